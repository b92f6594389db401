package rpc

import "encoding/json"

// ResponseStatus is "success" on success, or the failure string otherwise.
type ResponseStatus string

const ResponseSuccess ResponseStatus = "success"

// RawResponse is an RPC response as received from upstream, before the
// response filter has interpreted its arguments.
type RawResponse struct {
	Tag       *int32
	Arguments json.RawMessage
	Result    ResponseStatus
}

type rawResponseWire struct {
	Tag       *int32          `json:"tag,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Result    ResponseStatus  `json:"result"`
}

func (r *RawResponse) UnmarshalJSON(data []byte) error {
	var wire rawResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Tag = wire.Tag
	r.Arguments = wire.Arguments
	r.Result = wire.Result
	return nil
}

func (r RawResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawResponseWire{Tag: r.Tag, Arguments: r.Arguments, Result: r.Result})
}

// ResponseKind is the typed shape of a response's arguments, set explicitly
// by the response filter based on which request produced it.
type ResponseKind struct {
	Torrents *Torrents
	Session  *SessionArguments
	Other    json.RawMessage
}

func (k ResponseKind) MarshalJSON() ([]byte, error) {
	switch {
	case k.Torrents != nil:
		return json.Marshal(k.Torrents)
	case k.Session != nil:
		return json.Marshal(k.Session)
	default:
		if k.Other == nil {
			return []byte("null"), nil
		}
		return k.Other, nil
	}
}

// Response is the RPC response sent back to the client, with arguments
// already filtered.
type Response struct {
	Tag       *int32
	Arguments *ResponseKind
	Result    ResponseStatus
}

func (r Response) MarshalJSON() ([]byte, error) {
	wire := struct {
		Tag       *int32          `json:"tag"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
		Result    ResponseStatus  `json:"result"`
	}{Tag: r.Tag, Result: r.Result}

	if r.Arguments != nil {
		argsJSON, err := json.Marshal(*r.Arguments)
		if err != nil {
			return nil, err
		}
		wire.Arguments = argsJSON
	}

	return json.Marshal(wire)
}

// NewFailure builds a failure Response carrying no arguments, matching the
// shape every filter error produces: {"tag", "arguments": null, "result"}.
func NewFailure(tag *int32, result string) *Response {
	return &Response{Tag: tag, Arguments: &ResponseKind{}, Result: ResponseStatus(result)}
}
