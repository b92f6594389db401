// Package acl resolves an authenticated identity to the access-control rule
// that governs it.
package acl

import (
	"log"

	"github.com/omnicloud/transmission-proxy/internal/auth"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
	"github.com/omnicloud/transmission-proxy/internal/trackerrule"
)

// RuleIdentity is a single (kind, name[, provider]) entry an Acl rule
// matches against. It is comparable so rule sets can use it as a set key.
type RuleIdentity struct {
	Basic  string `yaml:"basic,omitempty"`
	OAuth2 string `yaml:"oauth2,omitempty"`
}

// Rule is one entry of the ACL: the identities it applies to, and the
// restrictions placed on them.
type Rule struct {
	// Identities this rule matches. An empty list makes this the
	// anonymous-default rule.
	Identities []RuleIdentity `yaml:"identities,omitempty"`

	// DownloadDir, when set, forces every torrent this identity can see or
	// add to live under this path.
	DownloadDir *string `yaml:"download_dir,omitempty"`

	// AllowedMethods restricts which RPC methods this identity may call.
	// An empty list means unrestricted (use Deny to block access instead).
	AllowedMethods []rpc.MethodName `yaml:"allowed_methods,omitempty"`

	// Deny blocks all access for matched identities.
	Deny bool `yaml:"deny,omitempty"`

	// TrackerRules rewrites tracker URLs in torrents this identity adds.
	TrackerRules []trackerrule.Rule `yaml:"tracker_rules,omitempty"`
}

// IsNop reports whether this rule restricts nothing at all, letting a
// caller skip request deserialization entirely.
func (r *Rule) IsNop() bool {
	return r.DownloadDir == nil && len(r.AllowedMethods) == 0 && !r.Deny && len(r.TrackerRules) == 0
}

func (r *Rule) isAnonymous() bool {
	return len(r.Identities) == 0
}

func (r *Rule) matchesBasic(username string) bool {
	for _, id := range r.Identities {
		if id.Basic == username && id.OAuth2 == "" {
			return true
		}
	}
	return false
}

func (r *Rule) matchesOAuth2(username, provider string) bool {
	for _, id := range r.Identities {
		if id.OAuth2 == provider && id.Basic == username {
			return true
		}
	}
	return false
}

// Set is the full list of ACL rules loaded from configuration. It is
// immutable once loaded and safe for concurrent use.
type Set struct {
	Rules []Rule `yaml:"rules"`
}

func (s *Set) anon() *Rule {
	for i := range s.Rules {
		if s.Rules[i].isAnonymous() {
			return &s.Rules[i]
		}
	}
	return nil
}

// Authenticator verifies a basic-auth password against configured users.
// internal/auth.BasicProvider implements this.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// Resolve returns the rule that applies to id, or nil if no rule applies at
// all (fail-open: the request proceeds unfiltered, and a warning is logged,
// matching the documented behavior of a misconfigured or empty ACL set).
//
// When id is a Basic identity carrying a plaintext password, the password
// is verified against basicAuth before the matching rule is returned; a
// nil password means the caller already authenticated via a session token
// and verification is skipped.
func (s *Set) Resolve(id auth.Identity, basicAuth Authenticator) *Rule {
	var matched *Rule

	switch id.Kind {
	case auth.Anonymous:
		matched = nil

	case auth.Basic:
		var found *Rule
		for i := range s.Rules {
			if s.Rules[i].matchesBasic(id.Username) {
				found = &s.Rules[i]
				break
			}
		}
		if found == nil {
			// No rule names this username at all: not the same as a
			// rule being found and failing password verification, so
			// this does not fall through to an anonymous default.
			log.Printf("[acl] no rule names basic user %q; allowing unfiltered access", id.Username)
			return nil
		}
		matched = found
		if id.Password != nil {
			if basicAuth == nil || !basicAuth.Authenticate(id.Username, *id.Password) {
				matched = nil
			}
		}

	case auth.OAuth2:
		for i := range s.Rules {
			if s.Rules[i].matchesOAuth2(id.Username, id.Provider) {
				matched = &s.Rules[i]
				break
			}
		}
	}

	if matched != nil {
		return matched
	}

	if anon := s.anon(); anon != nil {
		return anon
	}

	log.Printf("[acl] no rule matched identity %+v and no anonymous default is configured; allowing unfiltered access", id)
	return nil
}
