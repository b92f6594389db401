// Package metainfo decodes and re-encodes bencoded .torrent files, rewriting
// only their tracker announce URLs. The "info" dictionary, which determines
// the torrent's hash, is carried as raw bytes and stays byte-identical.
// Decoding goes through anacrolix's metainfo.MetaInfo, so only the top-level
// keys that type models survive a round trip; any other top-level key is
// dropped on re-encode.
package metainfo

import (
	"fmt"

	"github.com/anacrolix/torrent/bencode"
	anametainfo "github.com/anacrolix/torrent/metainfo"

	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

// Torrent wraps a decoded .torrent file.
type Torrent struct {
	mi anametainfo.MetaInfo
}

// Decode parses raw bencoded .torrent bytes.
func Decode(data []byte) (*Torrent, error) {
	var mi anametainfo.MetaInfo
	if err := bencode.Unmarshal(data, &mi); err != nil {
		return nil, fmt.Errorf("metainfo: decoding torrent: %w", err)
	}
	return &Torrent{mi: mi}, nil
}

// Encode re-serializes the torrent to bencoded bytes. "info" round-trips
// byte-identical; top-level keys that metainfo.MetaInfo does not model are
// not written back.
func (t *Torrent) Encode() ([]byte, error) {
	out, err := bencode.Marshal(t.mi)
	if err != nil {
		return nil, fmt.Errorf("metainfo: encoding torrent: %w", err)
	}
	return out, nil
}

// RewriteTrackers applies rules to the main announce URL and every tier of
// the announce-list, in place.
func (t *Torrent) RewriteTrackers(rules []trackerrule.Rule) {
	if t.mi.Announce != "" {
		if result, removed := trackerrule.ApplyOne(t.mi.Announce, rules); !removed {
			t.mi.Announce = result
		} else {
			t.mi.Announce = ""
		}
	}

	for i, tier := range t.mi.AnnounceList {
		t.mi.AnnounceList[i] = trackerrule.ApplyList(tier, rules)
	}
}

// InfoHash returns the hex-encoded sha1 hash of the info dictionary.
func (t *Torrent) InfoHash() string {
	return t.mi.HashInfoBytes().HexString()
}
