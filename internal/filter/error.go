// Package filter implements the per-method request and response policy
// applied once an ACL rule has been resolved for a caller.
package filter

import (
	"fmt"

	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

// ErrorKind is the closed set of ways a filter step can reject a request or
// fail to process a response.
type ErrorKind int

const (
	KindUnsupported ErrorKind = iota
	KindForbidden
	KindTorrent
	KindBase64
	KindParseBody
	KindSerde
	KindUpstream
	KindUpstreamUnknown
)

// Error is a filter failure, always tied to the original request's tag so
// the caller can reply with a correctly-correlated failure body.
type Error struct {
	Tag    *int32
	Kind   ErrorKind
	Reason string // populated for KindUnsupported
	Err    error  // wrapped cause, for Torrent/Base64/Serde/Upstream
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupported:
		return fmt.Sprintf("unsupported: %s", e.Reason)
	case KindForbidden:
		return "access denied"
	case KindTorrent:
		return "torrent error"
	case KindBase64:
		return "base64 error"
	case KindParseBody:
		return "could not parse request body"
	case KindSerde:
		return "could not decode body"
	case KindUpstream:
		return "upstream error"
	case KindUpstreamUnknown:
		return "unknown upstream error"
	default:
		return "filter error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus is the HTTP status code this error kind maps to.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnsupported:
		return 501
	case KindForbidden:
		return 403
	case KindTorrent, KindBase64, KindParseBody:
		return 400
	case KindSerde:
		return 500
	case KindUpstream:
		return 503
	case KindUpstreamUnknown:
		return 502
	default:
		return 500
	}
}

// Response builds the failure RPC body this error produces:
// {"tag": <original tag or null>, "arguments": null, "result": "<string>"}.
func (e *Error) Response() *rpc.Response {
	return rpc.NewFailure(e.Tag, e.Error())
}
