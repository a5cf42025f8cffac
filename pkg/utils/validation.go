package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	setupOnce     sync.Once
	lkMobileRegex = regexp.MustCompile(`^07[0-9]{8}$`)
)

// SetupValidator teaches gin's validator to report JSON field names and
// registers the project specific rules. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("lk_mobile", func(fl validator.FieldLevel) bool {
			return lkMobileRegex.MatchString(fl.Field().String())
		})
	})
}

// BindingErrors converts a binding failure into field messages.
// The boolean is false when the error is not a validation problem (malformed JSON, EOF).
func BindingErrors(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		return map[string][]string{
			field: {fmt.Sprintf("The %s field must be %s.", humanize(field), kindNoun(typeErr.Type.Kind()))},
		}, true
	}

	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format %s.", name, fe.Param())
	case "lk_mobile":
		return fmt.Sprintf("The %s field format is invalid.", name)
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", name, humanize(fe.Param()))
	case "max", "lte":
		if isString(fe.Kind()) {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "min", "gte":
		if isString(fe.Kind()) {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, fe.Param())
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

func humanize(field string) string {
	return strings.ToLower(strings.ReplaceAll(field, "_", " "))
}

func isString(k reflect.Kind) bool {
	return k == reflect.String
}

func kindNoun(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "true or false"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	}
	return "a valid value"
}
