package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// customValidation is a validation tag the default translations do not know.
type customValidation struct {
	tag     string
	message string
	fn      validator.Func
}

var customValidations = []customValidation{
	{tag: "file", message: "{0} must be an existing and readable file", fn: isReadableFile},
}

// newValidator returns a validator reporting fields by their config key,
// e.g. "api.base_url", with english messages.
func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(configKey)

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}

	for _, custom := range customValidations {
		if err := validate.RegisterValidation(custom.tag, custom.fn); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterValidation(%s) > %w", custom.tag, err)
		}
		if err := validate.RegisterTranslation(custom.tag, trans, registerMessage(custom.tag, custom.message), translateWithNamespace); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterTranslation(%s) > %w", custom.tag, err)
		}
	}
	return validate, trans, nil
}

func configKey(field reflect.StructField) string {
	key, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if key == "-" {
		return ""
	}
	return key
}

func registerMessage(tag, message string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, message, true)
	}
}

// translateWithNamespace names the field by its full key, e.g. "templates.quiz_markdown".
func translateWithNamespace(trans ut.Translator, fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	message, err := trans.T(fe.Tag(), key)
	if err != nil {
		return fe.Error()
	}
	return message
}

func isReadableFile(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = file.Close()
	return true
}
