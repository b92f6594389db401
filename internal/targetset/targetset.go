// Package targetset expands an opaque torrent-id selector (a single id, a
// list of id-or-sha1, or "recently-active") into a concrete list of ids the
// caller's ACL is authorized to act on.
package targetset

import (
	"context"
	"fmt"
	"strings"

	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

// Prober fetches the upstream's current id/download-dir pairs restricted
// to selector (or all torrents, for "recently-active"/unset selectors).
type Prober func(ctx context.Context, selector *rpc.TorrentIDs) ([]rpc.Torrent, error)

// PrefixOK reports whether path is prefix-ok against dir: dir is absent, or
// path equals dir, or path starts with dir + "/".
func PrefixOK(path string, dir *string) bool {
	if dir == nil {
		return true
	}
	d := *dir
	if path == d {
		return true
	}
	if !strings.HasSuffix(d, "/") {
		d += "/"
	}
	return strings.HasPrefix(path, d)
}

// Resolve probes upstream for selector's matching torrents and returns the
// ids of those whose download dir is prefix-ok against downloadDir. A
// resulting empty id list is valid and is forwarded as-is (it simply means
// nothing in the original selector was authorized).
func Resolve(ctx context.Context, selector *rpc.TorrentIDs, downloadDir *string, probe Prober) (*rpc.TorrentIDs, error) {
	torrents, err := probe(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("targetset: probing upstream: %w", err)
	}

	ids := make([]int32, 0, len(torrents))
	for _, t := range torrents {
		dir := strings.TrimSuffix(t.DownloadDir, "/")
		if PrefixOK(dir, downloadDir) {
			ids = append(ids, t.ID.ID)
		}
	}

	return rpc.NewTorrentIDList(ids), nil
}
