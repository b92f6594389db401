package rpc

import (
	"encoding/json"
	"fmt"
)

// TorrentID is either a numeric torrent id or a 40-character hex sha1
// info-hash, as accepted by Transmission's "ids" argument.
type TorrentID struct {
	IsHash bool
	ID     int32
	Hash   string
}

func (t TorrentID) MarshalJSON() ([]byte, error) {
	if t.IsHash {
		return json.Marshal(t.Hash)
	}
	return json.Marshal(t.ID)
}

func (t *TorrentID) UnmarshalJSON(data []byte) error {
	var asInt int32
	if err := json.Unmarshal(data, &asInt); err == nil {
		t.IsHash = false
		t.ID = asInt
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		t.IsHash = true
		t.Hash = asStr
		return nil
	}
	return fmt.Errorf("rpc: invalid torrent id %s", data)
}

// TorrentIDsKind discriminates the shape stored in a TorrentIDs value.
type TorrentIDsKind int

const (
	TorrentIDsKindSingle TorrentIDsKind = iota
	TorrentIDsKindList
	TorrentIDsKindRecentlyActive
)

// TorrentIDs is the "ids" selector: a single id, a list of id-or-sha1, or
// the literal "recently-active".
type TorrentIDs struct {
	Kind   TorrentIDsKind
	Single int32
	List   []TorrentID
}

// NewTorrentIDList builds a TorrentIDs value from a list of numeric ids,
// the shape the target-set resolver produces after expansion.
func NewTorrentIDList(ids []int32) *TorrentIDs {
	list := make([]TorrentID, len(ids))
	for i, id := range ids {
		list[i] = TorrentID{ID: id}
	}
	return &TorrentIDs{Kind: TorrentIDsKindList, List: list}
}

func (t TorrentIDs) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TorrentIDsKindSingle:
		return json.Marshal(t.Single)
	case TorrentIDsKindRecentlyActive:
		return json.Marshal(RecentlyActive)
	default:
		return json.Marshal(t.List)
	}
}

func (t *TorrentIDs) UnmarshalJSON(data []byte) error {
	var asInt int32
	if err := json.Unmarshal(data, &asInt); err == nil {
		*t = TorrentIDs{Kind: TorrentIDsKindSingle, Single: asInt}
		return nil
	}

	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		if asStr != RecentlyActive {
			return fmt.Errorf("rpc: invalid torrent id set %q", asStr)
		}
		*t = TorrentIDs{Kind: TorrentIDsKindRecentlyActive}
		return nil
	}

	var list []TorrentID
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("rpc: invalid ids value %s: %w", data, err)
	}
	*t = TorrentIDs{Kind: TorrentIDsKindList, List: list}
	return nil
}
