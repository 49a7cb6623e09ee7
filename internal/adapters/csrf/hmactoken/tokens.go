package hmactoken

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"cat-registry/internal/ports/csrf"
)

const nonceSize = 16

// TokenService firma token = base64url(nonce || HMAC-SHA256(key, sessionID || nonce)).
// No guarda estado: cualquier token firmado para la sesión es válido.
type TokenService struct {
	key  []byte
	rand io.Reader
}

var _ csrf.TokenService = (*TokenService)(nil)

// New crea el servicio. Un secreto vacío genera una key aleatoria.
func New(secret string) (*TokenService, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("csrf: generate key: %w", err)
		}
		return &TokenService{key: key, rand: rand.Reader}, nil
	}
	if len(secret) < 16 {
		return nil, errors.New("csrf: secret must be at least 16 bytes")
	}
	return &TokenService{key: []byte(secret), rand: rand.Reader}, nil
}

func (s *TokenService) Issue(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", errors.New("csrf: session id required")
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return "", fmt.Errorf("csrf: read nonce: %w", err)
	}
	raw := append(nonce, s.mac(sessionID, nonce)...)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (s *TokenService) Verify(sessionID, token string) error {
	sessionID = strings.TrimSpace(sessionID)
	token = strings.TrimSpace(token)
	if sessionID == "" || token == "" {
		return csrf.ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != nonceSize+sha256.Size {
		return csrf.ErrInvalidToken
	}
	nonce, sig := raw[:nonceSize], raw[nonceSize:]
	if !hmac.Equal(sig, s.mac(sessionID, nonce)) {
		return csrf.ErrInvalidToken
	}
	return nil
}

func (s *TokenService) mac(sessionID string, nonce []byte) []byte {
	m := hmac.New(sha256.New, s.key)
	_, _ = m.Write([]byte(sessionID))
	_, _ = m.Write(nonce)
	return m.Sum(nil)
}
