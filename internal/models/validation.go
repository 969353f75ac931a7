package models

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JSONTagName names a struct field by its json tag so validation errors use
// the keys clients send. Query structs without a json tag use their form tag.
// Untagged fields and json:"-" fall back to the Go name.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	return name
}

var leadingAmount = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)`)

// ValidPrice reports whether price starts with a non-negative amount that
// ParsePrice can read, such as "25000" or "6000000 to 10000000".
func ValidPrice(price string) bool {
	return leadingAmount.MatchString(strings.TrimSpace(price))
}

func validatePrice(fl validator.FieldLevel) bool {
	return ValidPrice(fl.Field().String())
}

// ConfigureValidator names fields with JSONTagName and registers the "price"
// rule used by listing inputs.
func ConfigureValidator(v *validator.Validate) {
	v.RegisterTagNameFunc(JSONTagName)
	if err := v.RegisterValidation("price", validatePrice); err != nil {
		panic(err)
	}
}
