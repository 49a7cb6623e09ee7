package cats

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound lo devuelven todos los repos cuando el id no existe.
	ErrNotFound = errors.New("cat not found")
)

// ValidationError lleva las violaciones en el orden de los campos revisados.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid cat: " + strings.Join(e.Violations, ", ")
}

// Violations extrae los mensajes si err es (o envuelve) un ValidationError.
func Violations(err error) ([]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}
