package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/omnicloud/transmission-proxy/internal/auth"
)

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="{{.Base}}/auth/basic">
<input type="hidden" name="redirect_to" value="{{.RedirectTo}}">
<label>Username <input type="text" name="username"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Sign in</button>
</form>
{{range .Providers}}
<a href="{{$.Base}}/auth/{{.Name}}/login?redirect_to={{$.RedirectTo}}">Sign in with {{.Name}}</a>
{{end}}
</body>
</html>
`))

type loginView struct {
	Base       string
	RedirectTo string
	Providers  []auth.OAuth2Provider
}

// handleLoginView renders the basic-auth login form plus a link per
// visible OAuth2 provider.
func (s *Server) handleLoginView(w http.ResponseWriter, r *http.Request) {
	view := loginView{
		Base:       s.base,
		RedirectTo: r.URL.Query().Get("redirect_to"),
	}
	for _, p := range s.providers.OAuth2 {
		if p.Enabled && p.Visible {
			view.Providers = append(view.Providers, p)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, view); err != nil {
		log.Printf("[server] rendering login view: %v", err)
	}
}

// handleBasicLogin verifies posted credentials and, on success, sets a
// signed session cookie and redirects to redirect_to.
func (s *Server) handleBasicLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	redirectTo := r.FormValue("redirect_to")
	if redirectTo == "" {
		redirectTo = s.base + "/web/"
	}

	if !s.providers.Basic.Enabled || !s.providers.Basic.Authenticate(username, password) {
		http.Redirect(w, r, fmt.Sprintf("%s/login?redirect_to=%s", s.base, redirectTo), http.StatusFound)
		return
	}

	s.setSessionCookie(w, auth.Identity{Kind: auth.Basic, Username: username})
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// handleLogout clears the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.loginURL(), http.StatusFound)
}

// handleOAuth2Login redirects the caller to the named provider's
// authorize endpoint.
func (s *Server) handleOAuth2Login(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	provider := s.providers.Find(name)
	if provider == nil || !provider.Enabled {
		http.NotFound(w, r)
		return
	}

	redirectTo := r.URL.Query().Get("redirect_to")
	state := redirectTo

	cfg := provider.Config(s.callbackURL(r, name))
	http.Redirect(w, r, cfg.AuthCodeURL(state), http.StatusFound)
}

// handleOAuth2Callback exchanges the authorization code for an email
// address, then issues a session cookie for it.
func (s *Server) handleOAuth2Callback(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	provider := s.providers.Find(name)
	if provider == nil || !provider.Enabled {
		http.NotFound(w, r)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	email, err := provider.Exchange(r.Context(), s.callbackURL(r, name), code)
	if err != nil {
		log.Printf("[server] oauth2 exchange with %s failed: %v", name, err)
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	s.setSessionCookie(w, auth.Identity{Kind: auth.OAuth2, Username: email, Provider: name})

	redirectTo := r.URL.Query().Get("state")
	if redirectTo == "" {
		redirectTo = s.base + "/web/"
	}
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

func (s *Server) callbackURL(r *http.Request, provider string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s/auth/%s/callback", scheme, r.Host, s.base, provider)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id auth.Identity) {
	token, err := s.signer.Sign(id)
	if err != nil {
		log.Printf("[server] signing session token: %v", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTokenTTL / time.Second),
		HttpOnly: true,
	})
}
