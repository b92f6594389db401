package metainfo

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

func bencodeTestTorrent(announce string) []byte {
	info := "d6:lengthi1e4:name4:test12:piece lengthi16384e6:pieces20:00000000000000000000e"
	top := "d8:announce" + benc(announce) + "13:announce-listll" + benc(announce) + "ee4:info" + info + "e"
	return []byte(top)
}

func benc(s string) string {
	n := len(s)
	digits := []byte{}
	if n == 0 {
		digits = []byte("0")
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits) + ":" + s
}

func TestDecodeEncodePreservesInfoDict(t *testing.T) {
	raw := bencodeTestTorrent("http://tracker.example.com/announce")

	torrent, err := Decode(raw)
	require.NoError(t, err)

	hashBefore := torrent.InfoHash()

	torrent.RewriteTrackers(nil)
	out, err := torrent.Encode()
	require.NoError(t, err)

	roundTripped, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, hashBefore, roundTripped.InfoHash())
}

func TestRewriteTrackersAppliesToAnnounceAndList(t *testing.T) {
	raw := bencodeTestTorrent("http://private.example.com/announce")

	torrent, err := Decode(raw)
	require.NoError(t, err)

	re, err := regexp.Compile(`private\.example\.com`)
	require.NoError(t, err)
	rules := []trackerrule.Rule{{From: re, To: "public.example.com"}}

	torrent.RewriteTrackers(rules)

	out, err := torrent.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), "public.example.com")
	assert.NotContains(t, string(out), "private.example.com")
}
