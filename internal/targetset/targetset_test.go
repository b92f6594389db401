package targetset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

func strPtr(s string) *string { return &s }

func TestPrefixOK(t *testing.T) {
	dir := "/data/bob"
	assert.True(t, PrefixOK("/data/bob", &dir))
	assert.True(t, PrefixOK("/data/bob/movie", &dir))
	assert.False(t, PrefixOK("/data/bob-attack", &dir))
	assert.True(t, PrefixOK("/anything", nil))
}

func TestResolveFiltersByDownloadDir(t *testing.T) {
	probe := func(ctx context.Context, selector *rpc.TorrentIDs) ([]rpc.Torrent, error) {
		return []rpc.Torrent{
			{ID: rpc.TorrentID{ID: 10}, DownloadDir: "/data/bob"},
			{ID: rpc.TorrentID{ID: 11}, DownloadDir: "/data/alice"},
		}, nil
	}

	resolved, err := Resolve(context.Background(), &rpc.TorrentIDs{Kind: rpc.TorrentIDsKindRecentlyActive}, strPtr("/data/bob"), probe)
	require.NoError(t, err)
	require.Len(t, resolved.List, 1)
	assert.Equal(t, int32(10), resolved.List[0].ID)
}

func TestResolveNoDownloadDirKeepsEverything(t *testing.T) {
	probe := func(ctx context.Context, selector *rpc.TorrentIDs) ([]rpc.Torrent, error) {
		return []rpc.Torrent{
			{ID: rpc.TorrentID{ID: 10}, DownloadDir: "/data/bob"},
			{ID: rpc.TorrentID{ID: 11}, DownloadDir: "/data/alice"},
		}, nil
	}

	resolved, err := Resolve(context.Background(), &rpc.TorrentIDs{Kind: rpc.TorrentIDsKindRecentlyActive}, nil, probe)
	require.NoError(t, err)
	assert.Len(t, resolved.List, 2)
}
