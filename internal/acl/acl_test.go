package acl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omnicloud/transmission-proxy/internal/auth"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

type fakeAuthenticator struct {
	ok bool
}

func (f fakeAuthenticator) Authenticate(username, password string) bool {
	return f.ok
}

func TestResolveAnonymousFallsBackToAnonymousDefault(t *testing.T) {
	downloadDir := "/data/public"
	set := &Set{Rules: []Rule{
		{DownloadDir: &downloadDir},
	}}

	rule := set.Resolve(auth.Identity{Kind: auth.Anonymous}, nil)
	assert.Same(t, &set.Rules[0], rule)
}

func TestResolveBasicMatchRequiresPasswordVerification(t *testing.T) {
	set := &Set{Rules: []Rule{
		{Identities: []RuleIdentity{{Basic: "bob"}}, AllowedMethods: []rpc.MethodName{rpc.MethodTorrentGet}},
	}}

	password := "hunter2"
	id := auth.Identity{Kind: auth.Basic, Username: "bob", Password: &password}

	rule := set.Resolve(id, fakeAuthenticator{ok: false})
	assert.Nil(t, rule)

	rule = set.Resolve(id, fakeAuthenticator{ok: true})
	assert.NotNil(t, rule)
}

func TestResolveBasicViaSessionTokenSkipsVerification(t *testing.T) {
	set := &Set{Rules: []Rule{
		{Identities: []RuleIdentity{{Basic: "bob"}}},
	}}

	id := auth.Identity{Kind: auth.Basic, Username: "bob"}
	rule := set.Resolve(id, fakeAuthenticator{ok: false})
	assert.NotNil(t, rule)
}

func TestResolveBasicUnmatchedUsernameSkipsAnonymousDefault(t *testing.T) {
	downloadDir := "/data/public"
	set := &Set{Rules: []Rule{
		{DownloadDir: &downloadDir},
		{Identities: []RuleIdentity{{Basic: "bob"}}},
	}}

	password := "hunter2"
	id := auth.Identity{Kind: auth.Basic, Username: "carol", Password: &password}

	rule := set.Resolve(id, fakeAuthenticator{ok: true})
	assert.Nil(t, rule)
}

func TestResolveOAuth2MatchesProviderAndUsername(t *testing.T) {
	set := &Set{Rules: []Rule{
		{Identities: []RuleIdentity{{Basic: "alice@example.com", OAuth2: "google"}}},
	}}

	id := auth.Identity{Kind: auth.OAuth2, Username: "alice@example.com", Provider: "google"}
	rule := set.Resolve(id, nil)
	assert.NotNil(t, rule)

	id.Provider = "github"
	rule = set.Resolve(id, nil)
	assert.Nil(t, rule)
}

func TestResolveNoMatchFailsOpen(t *testing.T) {
	set := &Set{}
	rule := set.Resolve(auth.Identity{Kind: auth.Anonymous}, nil)
	assert.Nil(t, rule)
}

func TestRuleIsNop(t *testing.T) {
	assert.True(t, (&Rule{}).IsNop())

	dir := "/data"
	assert.False(t, (&Rule{DownloadDir: &dir}).IsNop())
	assert.False(t, (&Rule{Deny: true}).IsNop())
}
