package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimBaseFromRequestStripsMountPrefix(t *testing.T) {
	s := &Server{base: "/t"}

	r := httptest.NewRequest(http.MethodPost, "/t/rpc", nil)
	trimmed := s.trimBaseFromRequest(r)

	assert.Equal(t, "/rpc", trimmed.URL.Path)
	assert.Equal(t, "/t/rpc", r.URL.Path, "original request must not be mutated")
}

func TestTrimBaseFromRequestEmptyBaseIsNoop(t *testing.T) {
	s := &Server{base: ""}

	r := httptest.NewRequest(http.MethodGet, "/rpc", nil)
	trimmed := s.trimBaseFromRequest(r)

	require.Same(t, r, trimmed)
}

func TestTrimBaseFromRequestRootPathAfterTrim(t *testing.T) {
	s := &Server{base: "/t"}

	r := httptest.NewRequest(http.MethodGet, "/t", nil)
	trimmed := s.trimBaseFromRequest(r)

	assert.Equal(t, "/", trimmed.URL.Path)
}
