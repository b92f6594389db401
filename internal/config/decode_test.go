package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParsesACLAndProviders(t *testing.T) {
	doc := `
acl:
  rules:
    - identities: []
      deny: true
providers:
  basic:
    enabled: true
    users:
      - username: bob
        password: "$2a$10$abcdefghijklmnopqrstuv"
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, cfg.ACL.Rules, 1)
	assert.True(t, cfg.ACL.Rules[0].Deny)
	assert.True(t, cfg.Providers.Basic.Enabled)
	require.Len(t, cfg.Providers.Basic.Users, 1)
	assert.Equal(t, "bob", cfg.Providers.Basic.Users[0].Username)
}

func TestDecodeRejectsUnknownTopLevelKey(t *testing.T) {
	doc := `
unknown_key: true
`
	_, err := Decode(strings.NewReader(doc))
	assert.Error(t, err)
}
