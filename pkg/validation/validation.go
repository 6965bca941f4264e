// Package validation registra sobre go-playground/validator las reglas propias
// de los contratos de entrada (CPF, CNPJ, e-mail, colecciones no vacías) y
// traduce los errores a mensajes legibles.
package validation

import (
	"encoding/base64"
	"errors"
	"net/mail"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/shared-api/pkg/document"
)

// Tags registrados por New.
const (
	TagCPF         = "cpf"
	TagCNPJ        = "cnpj"
	TagMailAddress = "mail_address"
	TagAnyItems    = "any_items"
	TagBase64      = "base64"
)

// Mensajes por tag.
const (
	MsgCPF      = "Value is not CPF valid."
	MsgCNPJ     = "Value is not CNPJ valid."
	MsgEmail    = "Value is not e-mail valid."
	MsgBase64   = "Value is not Base64 valid."
	MsgAnyItems = "The collection must have any item."
	MsgRequired = "Value is required."
)

var messages = map[string]string{
	TagCPF:         MsgCPF,
	TagCNPJ:        MsgCNPJ,
	TagMailAddress: MsgEmail,
	TagBase64:      MsgBase64,
	TagAnyItems:    MsgAnyItems,
	"required":     MsgRequired,
}

// New crea un validador con las reglas propias registradas. Los nombres de
// campo en los mensajes salen de la etiqueta json cuando existe.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// callEvenIfNull: un puntero nulo es un valor ausente y lo decide la regla.
	mustRegister(v, TagCPF, stringRule(document.IsValidCPF))
	mustRegister(v, TagCNPJ, stringRule(document.IsValidCNPJ))
	mustRegister(v, TagMailAddress, stringRule(IsValidEmail))
	mustRegister(v, TagAnyItems, anyItems)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn, true); err != nil {
		panic(err)
	}
}

// stringRule aplica check a campos string; nulos y vacíos son válidos.
func stringRule(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Pointer, reflect.Interface:
			if f.IsNil() {
				return true
			}
			f = f.Elem()
		}
		if f.Kind() != reflect.String {
			return false
		}
		s := f.String()
		return s == "" || check(s)
	}
}

// anyItems exige al menos un elemento. Un valor nulo solo es válido sin el
// parámetro "required" (any_items=required).
func anyItems(fl validator.FieldLevel) bool {
	f := fl.Field()
	required := fl.Param() == "required"
	switch f.Kind() {
	case reflect.Slice, reflect.Map:
		if f.IsNil() {
			return !required
		}
		return f.Len() > 0
	case reflect.Array:
		return f.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return f.IsNil() && !required
	default:
		panic("validation: any_items solo aplica a slices, arrays o mapas, se recibió " + f.Kind().String())
	}
}

// IsValidEmail indica si email es una dirección simple (sin nombre) bien formada.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// Base64Encode codifica en base64 estándar el texto UTF-8.
func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Error agrupa los mensajes de una validación fallida.
type Error struct {
	messages []string
	cause    error
}

// Messages devuelve los mensajes en el orden de los campos.
func (e *Error) Messages() []string { return e.messages }

func (e *Error) Error() string { return strings.Join(e.messages, "; ") }

func (e *Error) Unwrap() error { return e.cause }

// Wrap convierte un error de validator en *Error; otros errores se devuelven sin cambios.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	return &Error{messages: Messages(ve), cause: err}
}

// Messages traduce cada FieldError a "campo: mensaje".
func Messages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fieldName(fe)+": "+message(fe))
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min", "gte":
		return "Value must be at least " + fe.Param() + "."
	case "max", "lte":
		return "Value must be at most " + fe.Param() + "."
	case "oneof":
		return "Value must be one of: " + fe.Param() + "."
	default:
		return "Value is not valid (" + fe.Tag() + ")."
	}
}
