package rpc

// Call is one method invocation's typed arguments. Every concrete
// arguments type below implements it.
type Call interface {
	Method() MethodName
	// arguments returns the value to marshal under the "arguments" key, or
	// nil when the method carries none.
	arguments() interface{}
}

// HasTorrentIDs is implemented by every call that addresses a target set
// of torrents through an "ids" argument.
type HasTorrentIDs interface {
	Call
	IDs() *TorrentIDs
	SetIDs(*TorrentIDs)
	// FiltersOnResponse reports whether authorization for this call is
	// enforced on the response instead of the request (true only for
	// torrent-get, whose result is filtered by download-dir prefix).
	FiltersOnResponse() bool
}

// TorrentAction is the shared arguments shape of torrent-start,
// torrent-start-now, torrent-stop, torrent-verify, torrent-reannounce and
// torrent-remove (remove additionally carries delete-local-data, see
// TorrentRemove).
type TorrentAction struct {
	method MethodName
	Ids    *TorrentIDs `json:"ids,omitempty"`
}

func NewTorrentAction(method MethodName, ids *TorrentIDs) *TorrentAction {
	return &TorrentAction{method: method, Ids: ids}
}

func (a *TorrentAction) Method() MethodName           { return a.method }
func (a *TorrentAction) arguments() interface{}       { return a }
func (a *TorrentAction) IDs() *TorrentIDs             { return a.Ids }
func (a *TorrentAction) SetIDs(ids *TorrentIDs)       { a.Ids = ids }
func (a *TorrentAction) FiltersOnResponse() bool      { return false }

// TorrentGet is the arguments of torrent-get. Authorization for it is
// enforced on the response (see FiltersOnResponse), not the request.
type TorrentGet struct {
	Ids    *TorrentIDs `json:"ids,omitempty"`
	Fields []string    `json:"fields,omitempty"`
	Format string      `json:"format,omitempty"`
}

func (a *TorrentGet) Method() MethodName      { return MethodTorrentGet }
func (a *TorrentGet) arguments() interface{}  { return a }
func (a *TorrentGet) IDs() *TorrentIDs        { return a.Ids }
func (a *TorrentGet) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *TorrentGet) FiltersOnResponse() bool { return true }

// TorrentAdd is the arguments of torrent-add.
type TorrentAdd struct {
	Cookies           *string  `json:"cookies,omitempty"`
	DownloadDir       string   `json:"download-dir"`
	Filename          *string  `json:"filename,omitempty"`
	Labels            []string `json:"labels,omitempty"`
	Metainfo          string   `json:"metainfo,omitempty"`
	Paused            bool     `json:"paused"`
	PeerLimit         *int32   `json:"peer-limit,omitempty"`
	BandwidthPriority *int32   `json:"bandwidthPriority,omitempty"`
	FilesWanted       []int32  `json:"files-wanted,omitempty"`
	FilesUnwanted     []int32  `json:"files-unwanted,omitempty"`
	PriorityHigh      []int32  `json:"priority-high,omitempty"`
	PriorityLow       []int32  `json:"priority-low,omitempty"`
	PriorityNormal    []int32  `json:"priority-normal,omitempty"`
}

func (a *TorrentAdd) Method() MethodName     { return MethodTorrentAdd }
func (a *TorrentAdd) arguments() interface{} { return a }

// TorrentRemove is the arguments of torrent-remove.
type TorrentRemove struct {
	Ids             *TorrentIDs `json:"ids,omitempty"`
	DeleteLocalData *bool       `json:"delete-local-data,omitempty"`
}

func (a *TorrentRemove) Method() MethodName      { return MethodTorrentRemove }
func (a *TorrentRemove) arguments() interface{}  { return a }
func (a *TorrentRemove) IDs() *TorrentIDs        { return a.Ids }
func (a *TorrentRemove) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *TorrentRemove) FiltersOnResponse() bool { return false }

// TorrentSet is the arguments of torrent-set.
type TorrentSet struct {
	BandwidthPriority   *int32      `json:"bandwidthPriority,omitempty"`
	DownloadLimit       *int32      `json:"downloadLimit,omitempty"`
	DownloadLimited     *bool       `json:"downloadLimited,omitempty"`
	FilesWanted         []int32     `json:"files-wanted,omitempty"`
	FilesUnwanted       []int32     `json:"files-unwanted,omitempty"`
	HonorsSessionLimits *bool       `json:"honorsSessionLimits,omitempty"`
	Ids                 *TorrentIDs `json:"ids,omitempty"`
	Labels              []string    `json:"labels,omitempty"`
	Location            *string     `json:"location,omitempty"`
	PeerLimit           *int32      `json:"peer-limit,omitempty"`
	PriorityHigh        []int32     `json:"priority-high,omitempty"`
	PriorityLow         []int32     `json:"priority-low,omitempty"`
	PriorityNormal      []int32     `json:"priority-normal,omitempty"`
	QueuePosition       *int32      `json:"queuePosition,omitempty"`
	SeedIdleLimit       *int32      `json:"seedIdleLimit,omitempty"`
	SeedIdleMode        *int32      `json:"seedIdleMode,omitempty"`
	SeedRatioLimit      *float64    `json:"seedRatioLimit,omitempty"`
	SeedRatioMode       *int32      `json:"seedRatioMode,omitempty"`
	TrackerAdd          []string    `json:"trackerAdd,omitempty"`
	TrackerRemove       []string    `json:"trackerRemove,omitempty"`
	TrackerReplace      []string    `json:"trackerReplace,omitempty"`
	UploadLimit         *int32      `json:"uploadLimit,omitempty"`
	UploadLimited       *bool       `json:"uploadLimited,omitempty"`
}

func (a *TorrentSet) Method() MethodName      { return MethodTorrentSet }
func (a *TorrentSet) arguments() interface{}  { return a }
func (a *TorrentSet) IDs() *TorrentIDs        { return a.Ids }
func (a *TorrentSet) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *TorrentSet) FiltersOnResponse() bool { return false }

// TorrentSetLocation is the arguments of torrent-set-location.
type TorrentSetLocation struct {
	Ids      *TorrentIDs `json:"ids,omitempty"`
	Location string      `json:"location"`
	Move     bool        `json:"move,omitempty"`
}

func (a *TorrentSetLocation) Method() MethodName      { return MethodTorrentSetLocation }
func (a *TorrentSetLocation) arguments() interface{}  { return a }
func (a *TorrentSetLocation) IDs() *TorrentIDs        { return a.Ids }
func (a *TorrentSetLocation) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *TorrentSetLocation) FiltersOnResponse() bool { return false }

// TorrentRenamePath is the arguments of torrent-rename-path. Left as a
// pass-through call: whether a renamed path could escape download-dir
// filtering is an open question, not a specified behavior.
type TorrentRenamePath struct {
	Ids  *TorrentIDs `json:"ids,omitempty"`
	Path string      `json:"path"`
	Name string      `json:"name"`
}

func (a *TorrentRenamePath) Method() MethodName      { return MethodTorrentRenamePath }
func (a *TorrentRenamePath) arguments() interface{}  { return a }
func (a *TorrentRenamePath) IDs() *TorrentIDs        { return a.Ids }
func (a *TorrentRenamePath) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *TorrentRenamePath) FiltersOnResponse() bool { return false }

// QueueMovement is the shared arguments shape of the four queue-move-*
// methods.
type QueueMovement struct {
	method MethodName
	Ids    *TorrentIDs `json:"ids,omitempty"`
}

func NewQueueMovement(method MethodName, ids *TorrentIDs) *QueueMovement {
	return &QueueMovement{method: method, Ids: ids}
}

func (a *QueueMovement) Method() MethodName      { return a.method }
func (a *QueueMovement) arguments() interface{}  { return a }
func (a *QueueMovement) IDs() *TorrentIDs        { return a.Ids }
func (a *QueueMovement) SetIDs(ids *TorrentIDs)  { a.Ids = ids }
func (a *QueueMovement) FiltersOnResponse() bool { return false }

// FreeSpace is the arguments of free-space.
type FreeSpace struct {
	Path string `json:"path"`
}

func (a *FreeSpace) Method() MethodName     { return MethodFreeSpace }
func (a *FreeSpace) arguments() interface{} { return a }

// SessionSet is the arguments of session-set. It passes through
// unrestricted (spec note: session methods are authorized purely by
// acl.AllowedMethods, never by per-field inspection), so it is kept as an
// opaque map rather than a fully enumerated struct.
type SessionSet map[string]interface{}

func (a SessionSet) Method() MethodName     { return MethodSessionSet }
func (a SessionSet) arguments() interface{} { return map[string]interface{}(a) }

// SessionGet is the arguments of session-get.
type SessionGet struct {
	Fields []string `json:"fields,omitempty"`
}

func (a *SessionGet) Method() MethodName     { return MethodSessionGet }
func (a *SessionGet) arguments() interface{} { return a }

// noArgsCall covers the methods that carry no arguments at all:
// session-stats, blocklist-update, port-test, session-close.
type noArgsCall struct {
	method MethodName
}

func (a noArgsCall) Method() MethodName     { return a.method }
func (a noArgsCall) arguments() interface{} { return nil }

// otherCall preserves an unrecognized method's raw arguments verbatim, so
// a permissive ACL can still forward methods this proxy doesn't model
// (forward compatibility with upstream additions).
type otherCall struct {
	method MethodName
	raw    interface{}
}

func (a otherCall) Method() MethodName     { return a.method }
func (a otherCall) arguments() interface{} { return a.raw }
