package validator

import (
	"errors"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	playground "github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads and translates the first failure into
// a single human-readable message.
type Validator struct {
	validate *playground.Validate
	trans    ut.Translator
}

// New builds a Validator with English translations and the custom
// strongpassword rule registered.
func New() (*Validator, error) {
	validate := playground.New(playground.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("strongpassword", strongPassword); err != nil {
		return nil, err
	}

	err := validate.RegisterTranslation(
		"strongpassword",
		trans,
		func(ut ut.Translator) error {
			return ut.Add(
				"strongpassword",
				"Password must be at least 8 characters long and contain uppercase, lowercase, number and special character",
				true,
			)
		},
		func(ut ut.Translator, fe playground.FieldError) string {
			t, _ := ut.T("strongpassword")
			return t
		},
	)
	if err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and returns an error carrying the first translated
// failure message, or nil when s is valid.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(verrs[0].Translate(v.trans))
	}

	return err
}

// strongPassword enforces the registration password policy: at least 8
// characters with upper case, lower case, a digit and a special character.
func strongPassword(fl playground.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
