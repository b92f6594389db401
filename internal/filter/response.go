package filter

import (
	"encoding/json"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
	"github.com/omnicloud/transmission-proxy/internal/targetset"
)

// Response applies rule's response-side policy: torrent-get results are
// narrowed to the caller's download dir, session-get's download-dir field
// is overridden to match it, and everything else passes through as-is. The
// returned response always carries req's tag, never the upstream
// response's own tag.
func Response(rule *acl.Rule, req *rpc.Request, raw *rpc.RawResponse) (*rpc.Response, error) {
	if rule != nil && rule.DownloadDir != nil && raw.Arguments != nil {
		switch req.Call.(type) {
		case *rpc.TorrentGet:
			var torrents rpc.Torrents
			if err := json.Unmarshal(raw.Arguments, &torrents); err != nil {
				return nil, &Error{Tag: req.Tag, Kind: KindSerde, Err: err}
			}

			filtered := make([]rpc.Torrent, 0, len(torrents.Torrents))
			for _, t := range torrents.Torrents {
				if targetset.PrefixOK(trimTrailingSlash(t.DownloadDir), rule.DownloadDir) {
					filtered = append(filtered, t)
				}
			}
			torrents.Torrents = filtered

			return &rpc.Response{
				Tag:       req.Tag,
				Arguments: &rpc.ResponseKind{Torrents: &torrents},
				Result:    raw.Result,
			}, nil

		case *rpc.SessionGet:
			var session rpc.SessionArguments
			if err := json.Unmarshal(raw.Arguments, &session); err != nil {
				return nil, &Error{Tag: req.Tag, Kind: KindSerde, Err: err}
			}
			session.DownloadDir = *rule.DownloadDir

			return &rpc.Response{
				Tag:       req.Tag,
				Arguments: &rpc.ResponseKind{Session: &session},
				Result:    raw.Result,
			}, nil
		}
	}

	var args *rpc.ResponseKind
	if raw.Arguments != nil {
		args = &rpc.ResponseKind{Other: raw.Arguments}
	}

	return &rpc.Response{
		Tag:       req.Tag,
		Arguments: args,
		Result:    raw.Result,
	}, nil
}

func trimTrailingSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}
