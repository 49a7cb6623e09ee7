package csrf

import "errors"

var (
	// ErrInvalidToken cubre token ausente, malformado o de otra sesión.
	ErrInvalidToken = errors.New("invalid authenticity token")
)

// TokenService emite y verifica tokens anti-forgery atados a una sesión.
type TokenService interface {
	Issue(sessionID string) (string, error)
	Verify(sessionID, token string) error
}
