// Package convert serializa valores a query string y a bytes JSON y viceversa.
package convert

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ToQueryString aplana la representación JSON de v en application/x-www-form-urlencoded.
// Los objetos anidados usan "padre.hijo" y los arreglos "lista[i].campo"; los
// nulos se omiten y se respeta el orden de los campos. Un valor que no es
// objeto produce "".
func ToQueryString(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", nil
	}
	var pairs []string
	flatten("", doc, &pairs)
	return strings.Join(pairs, "&"), nil
}

func flatten(prefix string, obj gjson.Result, pairs *[]string) {
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}
		flattenValue(name, value, pairs)
		return true
	})
}

func flattenValue(name string, value gjson.Result, pairs *[]string) {
	switch {
	case value.Type == gjson.Null:
	case value.IsObject():
		flatten(name, value, pairs)
	case value.IsArray():
		for i, item := range value.Array() {
			flattenValue(name+"["+strconv.Itoa(i)+"]", item, pairs)
		}
	default:
		*pairs = append(*pairs, url.QueryEscape(name)+"="+url.QueryEscape(value.String()))
	}
}

// ToBytes serializa v como JSON UTF-8. nil produce nil.
func ToBytes(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// FromBytes deserializa JSON en T. Sin datos devuelve el valor cero.
func FromBytes[T any](b []byte) (T, error) {
	var out T
	if len(b) == 0 {
		return out, nil
	}
	err := json.Unmarshal(b, &out)
	return out, err
}
