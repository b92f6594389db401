package filter

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

func strPtr(s string) *string { return &s }

func noopProbe(ctx context.Context, selector *rpc.TorrentIDs) ([]rpc.Torrent, error) {
	return nil, nil
}

func TestRequestNilRuleForwardsUnfiltered(t *testing.T) {
	req := &rpc.Request{Call: &rpc.TorrentGet{}}
	err := Request(context.Background(), nil, req, noopProbe)
	assert.NoError(t, err)
}

func TestRequestForbidsDisallowedMethod(t *testing.T) {
	rule := &acl.Rule{AllowedMethods: []rpc.MethodName{rpc.MethodTorrentGet}}
	req := &rpc.Request{Call: &rpc.TorrentAdd{}}

	err := Request(context.Background(), rule, req, noopProbe)
	require.Error(t, err)

	ferr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, ferr.Kind)
	assert.Equal(t, 403, ferr.HTTPStatus())
}

func TestRequestTorrentAddRejectsDownloadDirViolation(t *testing.T) {
	rule := &acl.Rule{DownloadDir: strPtr("/data/bob")}
	req := &rpc.Request{Call: &rpc.TorrentAdd{DownloadDir: "/data/alice"}}

	err := Request(context.Background(), rule, req, noopProbe)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, err.(*Error).Kind)
}

func TestRequestTorrentSetLocationPrefixCheck(t *testing.T) {
	rule := &acl.Rule{DownloadDir: strPtr("/data/bob")}
	req := &rpc.Request{Call: &rpc.TorrentSetLocation{Location: "/data/alice"}}

	err := Request(context.Background(), rule, req, noopProbe)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, err.(*Error).Kind)
}

func TestRequestTorrentSetRejectsUnsupportedTrackerReplace(t *testing.T) {
	rule := &acl.Rule{TrackerRules: []trackerrule.Rule{trackerRuleStub(t)}}
	req := &rpc.Request{Call: &rpc.TorrentSet{TrackerReplace: []string{"old", "new"}}}

	err := Request(context.Background(), rule, req, noopProbe)
	require.Error(t, err)
	assert.Equal(t, KindUnsupported, err.(*Error).Kind)
}

func TestRequestTorrentAddRewritesTrackersInMetainfo(t *testing.T) {
	rule := &acl.Rule{TrackerRules: []trackerrule.Rule{trackerRuleStub(t)}}

	raw := bencodeTestTorrent(t, "http://private.example.com/announce")
	req := &rpc.Request{Call: &rpc.TorrentAdd{Metainfo: base64.StdEncoding.EncodeToString(raw)}}

	err := Request(context.Background(), rule, req, noopProbe)
	require.NoError(t, err)

	add := req.Call.(*rpc.TorrentAdd)
	decoded, err := base64.StdEncoding.DecodeString(add.Metainfo)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "public.example.com")
}
