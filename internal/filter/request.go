package filter

import (
	"context"
	"encoding/base64"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/metainfo"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
	"github.com/omnicloud/transmission-proxy/internal/targetset"
	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

// Probe performs the torrent-get call the target-set resolver needs to
// expand an id selector into concrete torrent ids. The mediator supplies an
// implementation that calls upstream over the current connection.
type Probe = targetset.Prober

// Request applies rule's request-side policy to req, mutating it in place
// where the method calls for it (target-set expansion, tracker rewriting,
// location checks). rule is nil when no ACL matched at all, in which case
// the request is forwarded unfiltered.
//
// Deny is enforced by the mediator before this is ever called; Request only
// implements the per-method table.
func Request(ctx context.Context, rule *acl.Rule, req *rpc.Request, probe Probe) error {
	if rule == nil {
		return nil
	}

	if len(rule.AllowedMethods) > 0 && !methodAllowed(rule.AllowedMethods, req.Call.Method()) {
		return &Error{Tag: req.Tag, Kind: KindForbidden}
	}

	if rule.DownloadDir != nil {
		if ids, ok := rpc.TorrentIDsOf(req.Call); ok && !ids.FiltersOnResponse() {
			resolved, err := targetset.Resolve(ctx, ids.IDs(), rule.DownloadDir, probe)
			if err != nil {
				return &Error{Tag: req.Tag, Kind: KindUpstreamUnknown, Err: err}
			}
			ids.SetIDs(resolved)
		}
	}

	switch call := req.Call.(type) {
	case *rpc.TorrentSet:
		return filterTorrentSet(req.Tag, rule, call)

	case *rpc.TorrentSetLocation:
		if !targetset.PrefixOK(call.Location, rule.DownloadDir) {
			return &Error{Tag: req.Tag, Kind: KindForbidden}
		}

	case *rpc.TorrentAdd:
		return filterTorrentAdd(req.Tag, rule, call)
	}

	// Every other recognized method (torrent actions, torrent-get,
	// torrent-rename-path, queue movements, session methods) was either
	// authorized above via allowed_methods/target-set expansion, or is
	// authorized purely by allowed_methods and needs no further mutation.
	return nil
}

func filterTorrentSet(tag *int32, rule *acl.Rule, call *rpc.TorrentSet) error {
	if call.Location != nil && !targetset.PrefixOK(*call.Location, rule.DownloadDir) {
		return &Error{Tag: tag, Kind: KindForbidden}
	}

	if len(rule.TrackerRules) == 0 {
		return nil
	}

	call.TrackerAdd = trackerrule.ApplyList(call.TrackerAdd, rule.TrackerRules)
	call.TrackerRemove = trackerrule.ApplyList(call.TrackerRemove, rule.TrackerRules)

	if len(call.TrackerReplace) > 0 {
		return &Error{Tag: tag, Kind: KindUnsupported, Reason: "trackerReplace in torrent-set"}
	}

	return nil
}

func filterTorrentAdd(tag *int32, rule *acl.Rule, call *rpc.TorrentAdd) error {
	if !targetset.PrefixOK(call.DownloadDir, rule.DownloadDir) {
		return &Error{Tag: tag, Kind: KindForbidden}
	}

	if len(rule.TrackerRules) == 0 {
		return nil
	}

	if call.Metainfo == "" {
		return &Error{Tag: tag, Kind: KindUnsupported, Reason: "magnet links"}
	}

	raw, err := base64.StdEncoding.DecodeString(call.Metainfo)
	if err != nil {
		return &Error{Tag: tag, Kind: KindBase64, Err: err}
	}

	torrent, err := metainfo.Decode(raw)
	if err != nil {
		return &Error{Tag: tag, Kind: KindTorrent, Err: err}
	}

	torrent.RewriteTrackers(rule.TrackerRules)

	encoded, err := torrent.Encode()
	if err != nil {
		return &Error{Tag: tag, Kind: KindTorrent, Err: err}
	}

	call.Metainfo = base64.StdEncoding.EncodeToString(encoded)
	return nil
}

func methodAllowed(allowed []rpc.MethodName, method rpc.MethodName) bool {
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	return false
}
