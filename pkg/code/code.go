// Package code genera códigos cortos aleatorios (cupones, confirmaciones, referencias).
package code

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Alphabet caracteres permitidos en Random.
	Alphabet      = "abcdefghijklmnopqrstuvxwyz0123456789"
	DefaultLength = 8
	MaxLength     = 32
)

// Random genera un código con caracteres de Alphabet. length se ajusta a 1..32.
func Random(length int) (string, error) {
	length = clamp(length)
	size := big.NewInt(int64(len(Alphabet)))
	var b strings.Builder
	b.Grow(length)
	for b.Len() < length {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// FromUUID devuelve los primeros length caracteres de un UUID v4 sin guiones.
// length se ajusta a 1..32.
func FromUUID(length int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:clamp(length)]
}

func clamp(length int) int {
	if length > MaxLength {
		return MaxLength
	}
	if length <= 0 {
		return 1
	}
	return length
}
