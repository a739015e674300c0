package adminauth

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quillhq/quill/internal/common"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const TokenTTL = 24 * time.Hour

// Gate classifies callers as privileged or not. It holds a bcrypt hash of
// the single admin password and issues opaque session tokens kept in
// memory; content operations only ever consume the boolean it yields.
type Gate struct {
	hash  []byte
	cache *common.Cache
}

func NewGate(password string, cache *common.Cache) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	return &Gate{hash: hash, cache: cache}, nil
}

// Login exchanges the admin password for a session token.
func (g *Gate) Login(password string) (string, error) {
	err := bcrypt.CompareHashAndPassword(g.hash, []byte(password))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return "", ErrInvalidCredentials
		default:
			return "", err
		}
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	g.cache.Set(common.CacheKeyAdminToken(token), true, TokenTTL)

	return token, nil
}

// Verify reports whether the token identifies a privileged caller.
func (g *Gate) Verify(token string) bool {
	if token == "" {
		return false
	}

	_, ok := g.cache.Get(common.CacheKeyAdminToken(token))
	return ok
}

func (g *Gate) Logout(token string) {
	g.cache.Delete(common.CacheKeyAdminToken(token))
}

func newToken() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes), nil
}
