package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

func TestResponseTorrentGetFiltersByDownloadDir(t *testing.T) {
	rule := &acl.Rule{DownloadDir: strPtr("/data/bob")}
	tag := int32(9)
	req := &rpc.Request{Call: &rpc.TorrentGet{}, Tag: &tag}

	raw := &rpc.RawResponse{
		Tag:       nil,
		Arguments: json.RawMessage(`{"torrents":[{"id":10,"downloadDir":"/data/bob"},{"id":11,"downloadDir":"/data/alice"}]}`),
		Result:    rpc.ResponseSuccess,
	}

	resp, err := Response(rule, req, raw)
	require.NoError(t, err)
	require.NotNil(t, resp.Tag)
	assert.Equal(t, tag, *resp.Tag)

	require.NotNil(t, resp.Arguments.Torrents)
	require.Len(t, resp.Arguments.Torrents.Torrents, 1)
	assert.Equal(t, int32(10), resp.Arguments.Torrents.Torrents[0].ID.ID)
}

func TestResponseSessionGetOverridesDownloadDir(t *testing.T) {
	rule := &acl.Rule{DownloadDir: strPtr("/data/bob")}
	req := &rpc.Request{Call: &rpc.SessionGet{}}

	raw := &rpc.RawResponse{
		Arguments: json.RawMessage(`{"download-dir":"/real/path","version":"4.0.0"}`),
		Result:    rpc.ResponseSuccess,
	}

	resp, err := Response(rule, req, raw)
	require.NoError(t, err)
	require.NotNil(t, resp.Arguments.Session)
	assert.Equal(t, "/data/bob", resp.Arguments.Session.DownloadDir)
}

func TestResponseWithoutDownloadDirPassesThroughAsOther(t *testing.T) {
	req := &rpc.Request{Call: &rpc.TorrentGet{}}
	raw := &rpc.RawResponse{
		Arguments: json.RawMessage(`{"torrents":[]}`),
		Result:    rpc.ResponseSuccess,
	}

	resp, err := Response(nil, req, raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"torrents":[]}`, string(resp.Arguments.Other))
}
