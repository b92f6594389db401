package filter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

// trackerRuleStub rewrites the private.example.com tracker used by the
// test fixtures below to public.example.com.
func trackerRuleStub(t *testing.T) trackerrule.Rule {
	t.Helper()
	re, err := regexp.Compile(`private\.example\.com`)
	require.NoError(t, err)
	return trackerrule.Rule{From: re, To: "public.example.com"}
}

// bencodeTestTorrent returns a minimal single-file .torrent's raw bytes
// with the given announce URL, hand-encoded so the test doesn't depend on
// constructing the metainfo library's internal types directly.
func bencodeTestTorrent(t *testing.T, announce string) []byte {
	t.Helper()
	info := "d6:lengthi1e4:name4:test12:piece lengthi16384e6:pieces20:00000000000000000000e"
	top := "d8:announce" + benc(announce) + "4:info" + info + "e"
	return []byte(top)
}

func benc(s string) string {
	return itoa(len(s)) + ":" + s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
