// Package rpc models the Transmission-compatible JSON-RPC wire protocol:
// requests tagged by method name, and the loosely-typed responses upstream
// sends back.
package rpc

// MethodName identifies an RPC method. Most wire methods are kebab-case.
type MethodName string

const (
	MethodTorrentStart       MethodName = "torrent-start"
	MethodTorrentStartNow    MethodName = "torrent-start-now"
	MethodTorrentStop        MethodName = "torrent-stop"
	MethodTorrentVerify      MethodName = "torrent-verify"
	MethodTorrentReannounce  MethodName = "torrent-reannounce"
	MethodTorrentSet         MethodName = "torrent-set"
	MethodTorrentGet         MethodName = "torrent-get"
	MethodTorrentAdd         MethodName = "torrent-add"
	MethodTorrentRemove      MethodName = "torrent-remove"
	MethodTorrentSetLocation MethodName = "torrent-set-location"
	MethodTorrentRenamePath  MethodName = "torrent-rename-path"
	MethodSessionSet         MethodName = "session-set"
	MethodSessionGet         MethodName = "session-get"
	MethodSessionStats       MethodName = "session-stats"
	MethodBlocklistUpdate    MethodName = "blocklist-update"
	MethodPortTest           MethodName = "port-test"
	MethodSessionClose       MethodName = "session-close"
	MethodQueueMoveTop       MethodName = "queue-move-top"
	MethodQueueMoveUp        MethodName = "queue-move-up"
	MethodQueueMoveDown      MethodName = "queue-move-down"
	MethodQueueMoveBottom    MethodName = "queue-move-bottom"
	MethodFreeSpace          MethodName = "free-space"
)

// RecentlyActive is the only defined literal value of a torrent-id set
// selector.
const RecentlyActive = "recently-active"
