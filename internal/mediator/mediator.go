// Package mediator implements the proxy's core request/response pipeline:
// identify, resolve ACL, filter, forward to upstream, filter the reply.
package mediator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/auth"
	"github.com/omnicloud/transmission-proxy/internal/filter"
	"github.com/omnicloud/transmission-proxy/internal/rpc"
)

// SessionIDHeader is the header Transmission's daemon uses for its CSRF
// handshake: it 409s with this header until the client echoes it back.
const SessionIDHeader = "X-Transmission-Session-Id"

// Mediator forwards RPC requests to a single upstream Transmission daemon,
// applying ACL-driven request and response filtering in between.
type Mediator struct {
	upstream  *url.URL
	client    *http.Client
	acl       *acl.Set
	basicAuth acl.Authenticator
	loginPath string

	sessionMu sync.Mutex
	sessionID string
}

// New builds a Mediator that forwards to upstream. loginPath is the
// configured login route used to build redirect_to URLs for anonymous
// users denied by the ACL.
func New(upstream *url.URL, client *http.Client, aclSet *acl.Set, basicAuth acl.Authenticator, loginPath string) *Mediator {
	// Go's transport adds its own "Accept-Encoding: gzip" to any request
	// that lacks one; turning that off keeps the RPC path's header strip
	// visible to upstream.
	c := *client
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if t, ok := rt.(*http.Transport); ok {
		t = t.Clone()
		t.DisableCompression = true
		c.Transport = t
	}

	return &Mediator{
		upstream:  upstream,
		client:    &c,
		acl:       aclSet,
		basicAuth: basicAuth,
		loginPath: loginPath,
	}
}

// IsRPCPath reports whether path should be routed through the mediator
// rather than forwarded or served as a static/auth route.
func IsRPCPath(path string) bool {
	return strings.HasSuffix(path, "/rpc")
}

// ServeHTTP implements the full mediator contract for one RPC request. id
// is the caller's resolved identity, determined by the HTTP layer before
// this is called.
func (m *Mediator) ServeHTTP(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	rule := m.acl.Resolve(id, m.basicAuth)

	if rule != nil && rule.Deny {
		m.denyAccess(w, r, id)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	req, err := rpc.ParseRequest(body)
	if err != nil {
		m.writeFilterError(w, &filter.Error{Kind: filter.KindParseBody, Err: err})
		return
	}

	if err := filter.Request(r.Context(), rule, req, m.probe); err != nil {
		if ferr, ok := err.(*filter.Error); ok {
			m.writeFilterError(w, ferr)
			return
		}
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindUpstreamUnknown, Err: err})
		return
	}

	filteredBody, err := json.Marshal(req)
	if err != nil {
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindSerde, Err: err})
		return
	}

	upstreamResp, err := m.forward(r.Context(), r, filteredBody, true)
	if err != nil {
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindUpstream, Err: err})
		return
	}
	defer upstreamResp.Body.Close()

	respBody, err := io.ReadAll(upstreamResp.Body)
	if err != nil {
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindUpstream, Err: err})
		return
	}

	if upstreamResp.StatusCode == http.StatusConflict {
		if token := upstreamResp.Header.Get(SessionIDHeader); token != "" {
			m.setSessionID(token)
		}
		relayHeaders(w, upstreamResp.Header)
		w.WriteHeader(http.StatusConflict)
		w.Write(respBody)
		return
	}

	var raw rpc.RawResponse
	if err := json.Unmarshal(respBody, &raw); err != nil {
		// Upstream told us something we don't understand; relay it as-is.
		relayHeaders(w, upstreamResp.Header)
		w.WriteHeader(upstreamResp.StatusCode)
		w.Write(respBody)
		return
	}

	filtered, err := filter.Response(rule, req, &raw)
	if err != nil {
		if ferr, ok := err.(*filter.Error); ok {
			m.writeFilterError(w, ferr)
			return
		}
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindSerde, Err: err})
		return
	}

	out, err := json.Marshal(filtered)
	if err != nil {
		m.writeFilterError(w, &filter.Error{Tag: req.Tag, Kind: filter.KindSerde, Err: err})
		return
	}

	relayHeaders(w, upstreamResp.Header)
	w.Header().Del("Content-Length")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(upstreamResp.StatusCode)
	w.Write(out)
}

// ServeNonRPC forwards a non-/rpc request to upstream unmodified: URI
// rewritten, Host stripped, response relayed as-is.
func (m *Mediator) ServeNonRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	resp, err := m.forward(r.Context(), r, body, false)
	if err != nil {
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	relayHeaders(w, resp.Header)
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func (m *Mediator) denyAccess(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if id.IsAnonymous() {
		redirectTo := url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, fmt.Sprintf("%s?redirect_to=%s", m.loginPath, redirectTo), http.StatusFound)
		return
	}
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// forward rewrites req's URI to the upstream origin, strips Host, attaches
// the cached session token, and issues the request. isRPC additionally
// strips Accept-Encoding, which is only part of the /rpc contract; non-RPC
// paths are forwarded unchanged apart from Host scrubbing.
func (m *Mediator) forward(ctx context.Context, r *http.Request, body []byte, isRPC bool) (*http.Response, error) {
	target := *m.upstream
	target.Path = singleJoiningSlash(m.upstream.Path, r.URL.Path)
	target.RawQuery = r.URL.RawQuery

	outReq, err := http.NewRequestWithContext(ctx, r.Method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mediator: building upstream request: %w", err)
	}
	outReq.Header = r.Header.Clone()
	outReq.Header.Del("Host")
	if isRPC {
		outReq.Header.Del("Accept-Encoding")
	}
	outReq.ContentLength = int64(len(body))
	outReq.Header.Del("Content-Length")

	if token := m.getSessionID(); token != "" {
		outReq.Header.Set(SessionIDHeader, token)
	}

	return m.client.Do(outReq)
}

// probe implements filter.Probe/targetset.Prober by issuing a torrent-get
// call against upstream over the mediator's own client.
func (m *Mediator) probe(ctx context.Context, selector *rpc.TorrentIDs) ([]rpc.Torrent, error) {
	call := &rpc.TorrentGet{Ids: selector, Fields: []string{"id", "downloadDir"}}
	req := &rpc.Request{Call: call}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mediator: building probe request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.upstream.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mediator: building probe http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token := m.getSessionID(); token != "" {
		httpReq.Header.Set(SessionIDHeader, token)
	}

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mediator: probing upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		if token := resp.Header.Get(SessionIDHeader); token != "" {
			m.setSessionID(token)
		}
		return nil, fmt.Errorf("mediator: probe needs session handshake retry")
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw rpc.RawResponse
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("mediator: parsing probe response: %w", err)
	}

	var torrents rpc.Torrents
	if err := json.Unmarshal(raw.Arguments, &torrents); err != nil {
		return nil, fmt.Errorf("mediator: parsing probe torrents: %w", err)
	}

	return torrents.Torrents, nil
}

func (m *Mediator) getSessionID() string {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()
	return m.sessionID
}

func (m *Mediator) setSessionID(token string) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()
	m.sessionID = token
}

func (m *Mediator) writeFilterError(w http.ResponseWriter, ferr *filter.Error) {
	resp := ferr.Response()
	out, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[mediator] failed to marshal filter error response: %v", err)
		http.Error(w, ferr.Error(), ferr.HTTPStatus())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ferr.HTTPStatus())
	w.Write(out)
}

func relayHeaders(w http.ResponseWriter, h http.Header) {
	for k, values := range h {
		if k == "Content-Length" {
			continue
		}
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
}

func singleJoiningSlash(a, b string) string {
	aslash := strings.HasSuffix(a, "/")
	bslash := strings.HasPrefix(b, "/")
	switch {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	}
	return a + b
}
