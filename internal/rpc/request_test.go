package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32ptr(v int32) *int32 { return &v }

func TestParseRequestTorrentGet(t *testing.T) {
	req, err := ParseRequest([]byte(`{"method":"torrent-get","arguments":{"ids":[10,11],"fields":["id"]},"tag":7}`))
	require.NoError(t, err)
	require.Equal(t, int32ptr(7), req.Tag)

	get, ok := req.Call.(*TorrentGet)
	require.True(t, ok)
	require.NotNil(t, get.Ids)
	assert.Equal(t, TorrentIDsKindList, get.Ids.Kind)
	assert.Len(t, get.Ids.List, 2)
}

func TestParseRequestRecentlyActive(t *testing.T) {
	req, err := ParseRequest([]byte(`{"method":"torrent-get","arguments":{"ids":"recently-active"}}`))
	require.NoError(t, err)

	get := req.Call.(*TorrentGet)
	assert.Equal(t, TorrentIDsKindRecentlyActive, get.Ids.Kind)
}

func TestParseRequestUnrecognizedMethodPassesThrough(t *testing.T) {
	req, err := ParseRequest([]byte(`{"method":"some-future-method","arguments":{"foo":"bar"},"tag":1}`))
	require.NoError(t, err)
	assert.Equal(t, MethodName("some-future-method"), req.Call.Method())

	out, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	args := decoded["arguments"].(map[string]interface{})
	assert.Equal(t, "bar", args["foo"])
}

func TestRequestMarshalOmitsAbsentTagAndArguments(t *testing.T) {
	req := &Request{Call: noArgsCall{method: MethodSessionStats}}
	out, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	_, hasTag := decoded["tag"]
	_, hasArgs := decoded["arguments"]
	assert.False(t, hasTag)
	assert.False(t, hasArgs)
}

func TestTorrentIDMarshalUnmarshalRoundTrip(t *testing.T) {
	ids := []TorrentID{{ID: 5}, {IsHash: true, Hash: "abcd1234"}}
	out, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[5,"abcd1234"]`, string(out))

	var decoded []TorrentID
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, ids, decoded)
}
