package auth

import (
	"log"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BasicUser is one configured HTTP Basic account: a username and a bcrypt
// password hash.
type BasicUser struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password"`
}

// BasicProvider authenticates HTTP Basic credentials against a configured
// user list. Successful verifications are cached by username so repeat
// requests skip bcrypt's deliberately expensive hashing.
type BasicProvider struct {
	Enabled bool        `yaml:"enabled"`
	Visible bool        `yaml:"visible"`
	Users   []BasicUser `yaml:"users"`

	cacheMu sync.Mutex
	cache   map[string]string // username -> last verified plaintext password
}

// Authenticate reports whether password is correct for username. A cached
// match from a previous call skips bcrypt entirely; a cache miss falls
// back to bcrypt.CompareHashAndPassword and populates the cache on
// success.
func (p *BasicProvider) Authenticate(username, password string) bool {
	user := p.find(username)
	if user == nil {
		return false
	}

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	if p.cache == nil {
		p.cache = make(map[string]string)
	}

	if cached, ok := p.cache[username]; ok {
		return cached == password
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false
	}

	p.cache[username] = password
	return true
}

func (p *BasicProvider) find(username string) *BasicUser {
	for i := range p.Users {
		if p.Users[i].Username == username {
			return &p.Users[i]
		}
	}
	return nil
}

// HashPassword bcrypt-hashes a plaintext password for storage in
// configuration. Exposed for tooling that generates config files; the
// proxy itself only ever verifies, never hashes, at runtime.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[auth] failed to hash password: %v", err)
		return "", err
	}
	return string(hash), nil
}
