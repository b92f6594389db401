// Package config loads the proxy's runtime arguments and its ACL/provider
// configuration file.
package config

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/omnicloud/transmission-proxy/internal/acl"
	"github.com/omnicloud/transmission-proxy/internal/auth"
)

// Args holds the process-level settings: where to listen, where upstream
// Transmission lives, and where the ACL/providers file is. Built-in values
// are defaults; environment variables override them; flags override both.
type Args struct {
	Bind       string
	PublicURL  string
	Base       string
	ServeRoot  string
	Upstream   string
	LogLevel   string
	ConfigPath string
	SecretKey  string
}

// ParseArgs builds Args from defaults, then environment variables, then
// command-line flags, in that order of increasing precedence.
func ParseArgs(arguments []string) (*Args, error) {
	a := &Args{
		Bind:       "localhost:3000",
		Base:       "",
		ServeRoot:  "public",
		Upstream:   "http://localhost:9091",
		LogLevel:   "info",
		ConfigPath: "transmission-proxy.yaml",
	}

	a.loadFromEnv()

	fs := flag.NewFlagSet("transmission-proxy", flag.ContinueOnError)
	fs.StringVar(&a.Bind, "bind", a.Bind, "address and port to listen on")
	fs.StringVar(&a.PublicURL, "public-url", a.PublicURL, "public url this proxy is accessible at")
	fs.StringVar(&a.Base, "base", a.Base, "mount prefix all routes are served under")
	fs.StringVar(&a.ServeRoot, "serve-root", a.ServeRoot, "root path for static assets")
	fs.StringVar(&a.Upstream, "upstream", a.Upstream, "upstream transmission daemon")
	fs.StringVar(&a.LogLevel, "log", a.LogLevel, "log level")
	fs.StringVar(&a.ConfigPath, "config", a.ConfigPath, "path to the configuration file")
	fs.StringVar(&a.SecretKey, "secret-key", a.SecretKey, "secret key for signing session tokens")

	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	if a.PublicURL == "" {
		a.PublicURL = a.Bind
	}

	if a.SecretKey == "" {
		log.Printf("[config] no secret key configured; generated a random one, so sessions will not survive a restart")
		a.SecretKey = generateSecretKey()
	}

	return a, nil
}

func (a *Args) loadFromEnv() {
	if v := os.Getenv("TRANSMISSION_PROXY_BIND"); v != "" {
		a.Bind = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_PUBLIC_URL"); v != "" {
		a.PublicURL = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_BASE"); v != "" {
		a.Base = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_SERVE_ROOT"); v != "" {
		a.ServeRoot = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_UPSTREAM"); v != "" {
		a.Upstream = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_LOG"); v != "" {
		a.LogLevel = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_CONFIG"); v != "" {
		a.ConfigPath = v
	}
	if v := os.Getenv("TRANSMISSION_PROXY_SECRET_KEY"); v != "" {
		a.SecretKey = v
	}
}

const secretKeyLen = 32

// generateSecretKey produces a random key when the operator did not supply
// one. A warning should be logged by the caller, since tokens signed with
// a key that changes on every restart invalidate all existing sessions.
func generateSecretKey() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, secretKeyLen)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// Config is the on-disk ACL and authentication provider configuration,
// loaded once at startup and never modified afterwards.
type Config struct {
	ACL       acl.Set        `yaml:"acl"`
	Providers auth.Providers `yaml:"providers"`
}

// Load reads and strict-decodes the YAML configuration file at path.
// Unknown top-level keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return cfg, nil
}
