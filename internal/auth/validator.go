package auth

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/acme/login-api/internal/identity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCredentials trims control characters and spaces from both fields and rejects the request when either is
// blank. The returned credentials are the trimmed values.
func ValidateCredentials(creds Credentials) (Credentials, error) {
	trimmed := Credentials{
		Email:    identity.Trim(creds.Email),
		Password: identity.Trim(creds.Password),
	}
	if err := validate.Struct(trimmed); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Credentials{}, err
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return Credentials{}, &ValidationError{Fields: fields}
	}
	return trimmed, nil
}
