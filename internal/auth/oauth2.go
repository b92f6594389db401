package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// OAuth2Provider is one configured external identity provider: its code-
// exchange endpoint plus where to fetch the authenticated user's email
// from afterwards.
type OAuth2Provider struct {
	Name         string `yaml:"name"`
	Enabled      bool   `yaml:"enabled"`
	Visible      bool   `yaml:"visible"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	UserinfoURL  string `yaml:"userinfo_url"`
	EmailPath    string `yaml:"email_path"`
}

// Config returns the oauth2.Config this provider exchanges codes through.
// redirectURL is the proxy's own callback route for this provider.
func (p *OAuth2Provider) Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.AuthURL,
			TokenURL: p.TokenURL,
		},
		Scopes: []string{"openid", "email"},
	}
}

// Exchange trades an authorization code for a token, then fetches the
// account's email address from the provider's userinfo endpoint.
func (p *OAuth2Provider) Exchange(ctx context.Context, redirectURL, code string) (email string, err error) {
	cfg := p.Config(redirectURL)

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("auth: exchanging oauth2 code for %s: %w", p.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserinfoURL, nil)
	if err != nil {
		return "", err
	}
	token.SetAuthHeader(req)

	resp, err := cfg.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: fetching userinfo from %s: %w", p.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return extractEmail(body, p.EmailPath)
}

// extractEmail walks a dot-separated path (e.g. "email" or "user.email")
// into the decoded userinfo JSON document.
func extractEmail(body []byte, path string) (string, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("auth: decoding userinfo response: %w", err)
	}

	var cur interface{} = doc
	for _, segment := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("auth: email_path %q does not match userinfo response", path)
		}
		cur, ok = m[segment]
		if !ok {
			return "", fmt.Errorf("auth: email_path %q does not match userinfo response", path)
		}
	}

	email, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("auth: email_path %q did not resolve to a string", path)
	}
	return email, nil
}

// Providers is the full set of configured authentication providers.
type Providers struct {
	Basic  BasicProvider     `yaml:"basic"`
	OAuth2 []OAuth2Provider  `yaml:"oauth2"`
}

// Find returns the named OAuth2 provider, or nil if none match.
func (p *Providers) Find(name string) *OAuth2Provider {
	for i := range p.OAuth2 {
		if p.OAuth2[i].Name == name {
			return &p.OAuth2[i]
		}
	}
	return nil
}
