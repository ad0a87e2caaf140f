// Package validation checks the login and registration forms before anything
// is sent to the remote API.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"auth-panel/internal/domain"
)

// Field names as they appear in the forms.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldFullName        = "full_name"
	FieldConfirmPassword = "confirmPassword"
)

// MsgPasswordMismatch is reported on the confirmation field.
const MsgPasswordMismatch = "As senhas não conferem."

// Errors maps a form field to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// LoginInput is the raw login form.
type LoginInput struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Password string `form:"password" validate:"required,min=6,max=128"`
}

// RegisterInput decorates the login contract with the sign-up fields.
type RegisterInput struct {
	LoginInput
	FullName        string `form:"full_name" validate:"max=100"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,min=6,max=128"`
}

var messages = map[string]map[string]string{
	FieldUsername: {
		"required": "Informe seu usuário.",
		"min":      "O usuário deve ter pelo menos 3 caracteres.",
		"max":      "O usuário deve ter no máximo 50 caracteres.",
	},
	FieldPassword: {
		"required": "Informe sua senha.",
		"min":      "A senha deve ter pelo menos 6 caracteres.",
		"max":      "A senha deve ter no máximo 128 caracteres.",
	},
	FieldFullName: {
		"max": "O nome deve ter no máximo 100 caracteres.",
	},
	FieldConfirmPassword: {
		"required": "Confirme sua senha.",
		"min":      "A senha deve ter pelo menos 6 caracteres.",
		"max":      "A senha deve ter no máximo 128 caracteres.",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Login validates the login form. The username is trimmed; the password is
// taken verbatim.
func Login(in LoginInput) (domain.Credentials, Errors) {
	in.Username = strings.TrimSpace(in.Username)
	if errs := check(in); errs != nil {
		return domain.Credentials{}, errs
	}
	return domain.Credentials{Username: in.Username, Password: in.Password}, nil
}

// Register validates the registration form. An empty full name becomes
// absent; the confirmation must equal the password once both are otherwise
// valid.
func Register(in RegisterInput) (domain.Registration, Errors) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)

	errs := check(in)
	_, pwBad := errs[FieldPassword]
	_, confirmBad := errs[FieldConfirmPassword]
	if !pwBad && !confirmBad && in.Password != in.ConfirmPassword {
		if errs == nil {
			errs = Errors{}
		}
		errs[FieldConfirmPassword] = MsgPasswordMismatch
	}
	if errs != nil {
		return domain.Registration{}, errs
	}

	reg := domain.Registration{
		Credentials: domain.Credentials{Username: in.Username, Password: in.Password},
	}
	if in.FullName != "" {
		name := in.FullName
		reg.FullName = &name
	}
	return reg, nil
}

func check(in any) Errors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}

	out := Errors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out[field] = msg
	}
	return out
}
