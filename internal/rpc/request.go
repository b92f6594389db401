package rpc

import (
	"encoding/json"
	"fmt"
)

// Request is a parsed RPC call: a typed Call plus the correlation tag the
// response must carry back.
type Request struct {
	Call Call
	Tag  *int32
}

type envelope struct {
	Method    MethodName      `json:"method"`
	Arguments json.RawMessage `json:"arguments"`
	Tag       *int32          `json:"tag"`
}

// ParseRequest decodes a raw RPC request body.
func ParseRequest(data []byte) (*Request, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("rpc: parsing request: %w", err)
	}

	call, err := decodeCall(env.Method, env.Arguments)
	if err != nil {
		return nil, fmt.Errorf("rpc: decoding arguments for %s: %w", env.Method, err)
	}

	return &Request{Call: call, Tag: env.Tag}, nil
}

func decodeCall(method MethodName, args json.RawMessage) (Call, error) {
	unmarshalInto := func(v interface{}) error {
		if len(args) == 0 {
			return nil
		}
		return json.Unmarshal(args, v)
	}

	switch method {
	case MethodTorrentStart, MethodTorrentStartNow, MethodTorrentStop,
		MethodTorrentVerify, MethodTorrentReannounce:
		a := &TorrentAction{method: method}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentSet:
		a := &TorrentSet{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentGet:
		a := &TorrentGet{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentAdd:
		a := &TorrentAdd{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentRemove:
		a := &TorrentRemove{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentSetLocation:
		a := &TorrentSetLocation{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodTorrentRenamePath:
		a := &TorrentRenamePath{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodSessionSet:
		a := SessionSet{}
		if len(args) > 0 {
			if err := json.Unmarshal(args, &a); err != nil {
				return nil, err
			}
		}
		return a, nil

	case MethodSessionGet:
		a := &SessionGet{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodSessionStats, MethodBlocklistUpdate, MethodPortTest, MethodSessionClose:
		return noArgsCall{method: method}, nil

	case MethodQueueMoveTop, MethodQueueMoveUp, MethodQueueMoveDown, MethodQueueMoveBottom:
		a := &QueueMovement{method: method}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	case MethodFreeSpace:
		a := &FreeSpace{}
		if err := unmarshalInto(a); err != nil {
			return nil, err
		}
		return a, nil

	default:
		var raw interface{}
		if len(args) > 0 {
			if err := json.Unmarshal(args, &raw); err != nil {
				return nil, err
			}
		}
		return otherCall{method: method, raw: raw}, nil
	}
}

func (r *Request) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"method": r.Call.Method(),
	}
	if args := r.Call.arguments(); args != nil {
		m["arguments"] = args
	}
	if r.Tag != nil {
		m["tag"] = *r.Tag
	}
	return json.Marshal(m)
}

// TorrentIDsOf returns the call's torrent-id-bearing view, if it has one.
func TorrentIDsOf(call Call) (HasTorrentIDs, bool) {
	ids, ok := call.(HasTorrentIDs)
	return ids, ok
}
