package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/kbukum/fluxkit/errors"
)

// MessageTag is the struct tag holding a field's custom failure message.
const MessageTag = "msg"

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", validators.NotBlank)

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct using its validate tags.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	root := reflect.TypeOf(s)
	v := New()
	for _, e := range validationErrors {
		msg := messageFor(root, e.StructNamespace())
		if msg == "" {
			msg = e.Field() + " " + formatValidationError(e)
		}
		v.AddError(e.Field(), msg)
	}
	return v.Validate()
}

// messageFor walks namespace (e.g. "MovieInfo.Cast[0]") from root and
// returns the msg tag of the last struct field it names.
func messageFor(root reflect.Type, namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) < 2 {
		return ""
	}

	t := root
	var msg string
	for _, seg := range segments[1:] {
		t = elem(t)
		if t.Kind() != reflect.Struct {
			return ""
		}
		if i := strings.IndexByte(seg, '['); i >= 0 {
			seg = seg[:i]
		}
		f, ok := t.FieldByName(seg)
		if !ok {
			return ""
		}
		msg = f.Tag.Get(MessageTag)
		t = f.Type
	}
	return msg
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	return t
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gt":
		return "must be greater than " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				result.WriteRune('_')
			}
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}
