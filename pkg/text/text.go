package text

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrOutOfRange se devuelve cuando offset/count no caben en la cadena.
var ErrOutOfRange = errors.New("text: offset y count fuera de rango")

var spaces = regexp.MustCompile(`[\s\p{Z}]+`)

// Extract devuelve el texto entre begin y end. Sin caseSensitive la búsqueda
// ignora mayúsculas. Con allowMissingEnd, si end no aparece devuelve el resto
// de la cadena. ok es false si no hay coincidencia.
func Extract(source, begin, end string, caseSensitive, allowMissingEnd bool) (string, bool) {
	if source == "" {
		return "", false
	}
	index := strings.Index
	if !caseSensitive {
		index = indexFold
	}
	start := index(source, begin)
	if start < 0 {
		return "", false
	}
	from := start + len(begin)
	stop := index(source[from:], end)
	if stop < 0 {
		if allowMissingEnd {
			return source[from:], true
		}
		return "", false
	}
	return source[from : from+stop], true
}

// indexFold es strings.Index sin distinguir mayúsculas.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

// IsDigits indica si s solo contiene dígitos ASCII. La cadena vacía es válida.
func IsDigits(s string) bool {
	ok, _ := IsDigitsRange(s, 0, len(s))
	return ok
}

// IsDigitsRange como IsDigits sobre s[offset:offset+count].
func IsDigitsRange(s string, offset, count int) (bool, error) {
	if offset < 0 || count < 0 || offset+count > len(s) {
		return false, ErrOutOfRange
	}
	for i := offset; i < offset+count; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false, nil
		}
	}
	return true, nil
}

const (
	withAccent    = "ÀÁÂÃÄÅÇÈÉÊËÌÍÎÏÒÓÔÕÖÙÚÛÜàáâãäåçèéêëìíîïòóôõöùúûü"
	withoutAccent = "AAAAAACEEEEIIIIOOOOOUUUUaaaaaaceeeeiiiiooooouuuu"
	keptAccents   = "ÁÉÍÓÚÂÊÔÀÃÇáéíóúâêôàõãç"
)

var accentMap = func() map[rune]rune {
	from, to := []rune(withAccent), []rune(withoutAccent)
	m := make(map[rune]rune, len(from))
	for i, r := range from {
		m[r] = to[i]
	}
	return m
}()

// WithoutSpecialCharacters deja solo letras y dígitos ASCII (las vocales
// acentuadas y la ç se convierten a su letra base). Una "s" tras comilla se elimina.
func WithoutSpecialCharacters(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	var b strings.Builder
	var prev rune
	for _, r := range s {
		skip := !(isASCIIAlnum(r) || strings.ContainsRune(keptAccents, r)) ||
			(r == 's' && (prev == '\'' || prev == '"'))
		prev = r
		if skip {
			continue
		}
		if base, ok := accentMap[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// StandardSpaces reemplaza cada secuencia de espacios en blanco por un único espacio.
func StandardSpaces(s string) string {
	if s == "" {
		return s
	}
	return spaces.ReplaceAllString(s, " ")
}

// RemoveAccent elimina las marcas diacríticas (á -> a, ç -> c).
func RemoveAccent(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// RemoveAccentAndCapitalize elimina diacríticos y pasa a mayúsculas.
func RemoveAccentAndCapitalize(s string) string {
	// un Caser no se comparte entre goroutines
	return cases.Upper(language.Und).String(RemoveAccent(s))
}

// InlineConcat une los valores con el delimitador; sin valores devuelve "".
func InlineConcat(values []string, delimiter string) string {
	return strings.Join(values, delimiter)
}
