// Package validation configures go-playground/validator for request binding and for
// service-level checks, with English messages keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/campusdesk/academics/internal/app/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	trans    ut.Translator
	validate *govalidator.Validate
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")

	validate = govalidator.New()
	configure(validate)
}

// Setup registers the same rules and translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		configure(v)
	}
}

func configure(v *govalidator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("month", func(fl govalidator.FieldLevel) bool {
		return slices.Contains(models.Months, fl.Field().String())
	})

	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterTranslation("month", trans,
		func(t ut.Translator) error {
			return t.Add("month", "{0} must be a month name", true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, _ := t.T("month", fe.Field())
			return msg
		},
	)
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}
