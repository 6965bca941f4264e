// Package text agrupa utilidades de cadenas: parseo tolerante (TryParse*),
// extracción entre delimitadores y normalización de caracteres.
package text

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shared-api/pkg/enums"
)

// Formatos aceptados por TryParseDateTime, en orden de prueba. Las fechas con
// barras son mes/día/año (cultura invariante).
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

// TryParseDateTime interpreta s con los formatos invariantes y devuelve la fecha en UTC.
func TryParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// TryParseBase64 decodifica s en base64 estándar con relleno.
func TryParseBase64(s string) ([]byte, bool) {
	if s == "" {
		return nil, false
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// TryParseInt interpreta un entero de 32 bits con signo opcional.
func TryParseInt(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// TryParseDecimal interpreta dígitos con punto decimal opcional ("1289.88").
// No acepta signo, separador de miles, exponente ni coma decimal.
func TryParseDecimal(s string) (decimal.Decimal, bool) {
	if !isPlainDecimal(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isPlainDecimal(s string) bool {
	digits, points := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// TryParseEnum busca el valor por nombre (sin distinguir mayúsculas) o por número.
func TryParseEnum[T enums.Enum](s string, values []T) (T, bool) {
	return enums.Parse(s, values)
}
