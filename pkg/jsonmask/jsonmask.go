// Package jsonmask oculta propiedades sensibles de documentos JSON antes de
// registrarlos o reenviarlos.
package jsonmask

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// Masked valor que reemplaza a las propiedades sensibles.
const Masked = `"***"`

// IsValid indica si s es un objeto o arreglo JSON bien formado.
func IsValid(s string) bool {
	if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "---") {
		return false
	}
	object := strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
	array := strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
	if !object && !array {
		return false
	}
	return gjson.Valid(s)
}

// Mask reemplaza por "***" el valor de las propiedades cuyo nombre
// coincide (sin distinguir mayúsculas) con alguno de properties, en cualquier
// nivel de objetos anidados. Las propiedades nulas se eliminan y los arreglos
// se copian sin cambios. Un JSON inválido o que no es objeto se devuelve igual.
func Mask(json string, properties []string) string {
	if !IsValid(json) {
		return json
	}
	doc := gjson.Parse(json)
	if !doc.IsObject() {
		return json
	}
	var buf bytes.Buffer
	writeObject(&buf, doc, properties)
	return buf.String()
}

func writeObject(buf *bytes.Buffer, obj gjson.Result, properties []string) {
	buf.WriteByte('{')
	first := true
	obj.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Null {
			return true
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(key.Raw)
		buf.WriteByte(':')
		switch {
		case value.IsObject():
			writeObject(buf, value, properties)
		case isSensitive(key.String(), properties):
			buf.WriteString(Masked)
		default:
			buf.WriteString(value.Raw)
		}
		return true
	})
	buf.WriteByte('}')
}

func isSensitive(name string, properties []string) bool {
	for _, p := range properties {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}
