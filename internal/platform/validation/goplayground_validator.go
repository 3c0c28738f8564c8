package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var _ Validator = (*GoPlaygroundValidator)(nil)

// langListPattern matches a comma separated list of language codes such as "en, es-419, zh-cn".
var langListPattern = regexp.MustCompile(`^\s*([A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*)?(\s*,\s*[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*)*\s*,?\s*$`)

type GoPlaygroundValidator struct {
	v *validator.Validate
}

func NewGoPlaygroundValidator() *GoPlaygroundValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// register function to get tag name from json tags.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("langlist", func(fl validator.FieldLevel) bool {
		return langListPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register langlist validation: %v", err))
	}

	return &GoPlaygroundValidator{
		v: v,
	}
}

func (va *GoPlaygroundValidator) ValidateStruct(s any) map[string]string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return map[string]string{"": err.Error()}
	}

	errMap := make(map[string]string, len(valErrs))
	for _, e := range valErrs {
		errMap[e.Field()] = validationMessage(e)
	}

	return errMap
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", e.Field(), e.Param())
	case "langlist":
		return fmt.Sprintf("%s must be a comma separated list of language codes", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
