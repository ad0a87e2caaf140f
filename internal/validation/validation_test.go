package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-panel/internal/domain"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		in     LoginInput
		errors Errors
	}{
		{"short username", LoginInput{Username: "ab", Password: "secret1"},
			Errors{FieldUsername: "O usuário deve ter pelo menos 3 caracteres."}},
		{"blank username", LoginInput{Username: "   ", Password: "secret1"},
			Errors{FieldUsername: "Informe seu usuário."}},
		{"long username", LoginInput{Username: strings.Repeat("a", 51), Password: "secret1"},
			Errors{FieldUsername: "O usuário deve ter no máximo 50 caracteres."}},
		{"trimmed to short", LoginInput{Username: "  ab  ", Password: "secret1"},
			Errors{FieldUsername: "O usuário deve ter pelo menos 3 caracteres."}},
		{"empty password", LoginInput{Username: "alice", Password: ""},
			Errors{FieldPassword: "Informe sua senha."}},
		{"short password", LoginInput{Username: "alice", Password: "12345"},
			Errors{FieldPassword: "A senha deve ter pelo menos 6 caracteres."}},
		{"long password", LoginInput{Username: "alice", Password: strings.Repeat("p", 129)},
			Errors{FieldPassword: "A senha deve ter no máximo 128 caracteres."}},
		{"both bad", LoginInput{},
			Errors{FieldUsername: "Informe seu usuário.", FieldPassword: "Informe sua senha."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, errs := Login(tt.in)
			assert.Equal(t, tt.errors, errs)
			assert.Equal(t, domain.Credentials{}, creds)
		})
	}
}

func TestLogin_BoundsAreInclusive(t *testing.T) {
	for _, in := range []LoginInput{
		{Username: "abc", Password: "123456"},
		{Username: strings.Repeat("a", 50), Password: strings.Repeat("p", 128)},
	} {
		_, errs := Login(in)
		assert.Nil(t, errs)
	}
}

func TestLogin_TrimsUsernameOnly(t *testing.T) {
	creds, errs := Login(LoginInput{Username: "  alice ", Password: " secret "})
	require.Nil(t, errs)
	assert.Equal(t, domain.Credentials{Username: "alice", Password: " secret "}, creds)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	_, errs := Register(RegisterInput{
		LoginInput:      LoginInput{Username: "alice", Password: "secret1"},
		ConfirmPassword: "secret2",
	})
	assert.Equal(t, Errors{FieldConfirmPassword: "As senhas não conferem."}, errs)
}

func TestRegister_MismatchOnlyAfterLengthRules(t *testing.T) {
	_, errs := Register(RegisterInput{
		LoginInput:      LoginInput{Username: "alice", Password: "secret1"},
		ConfirmPassword: "abc",
	})
	assert.Equal(t, Errors{FieldConfirmPassword: "A senha deve ter pelo menos 6 caracteres."}, errs)

	_, errs = Register(RegisterInput{
		LoginInput:      LoginInput{Username: "alice", Password: "abc"},
		ConfirmPassword: "secret1",
	})
	assert.Equal(t, Errors{FieldPassword: "A senha deve ter pelo menos 6 caracteres."}, errs)

	_, errs = Register(RegisterInput{LoginInput: LoginInput{Username: "alice", Password: "secret1"}})
	assert.Equal(t, Errors{FieldConfirmPassword: "Confirme sua senha."}, errs)
}

func TestRegister_MismatchReportedWithOtherFieldErrors(t *testing.T) {
	_, errs := Register(RegisterInput{
		LoginInput:      LoginInput{Username: "ab", Password: "secret1"},
		ConfirmPassword: "secret2",
	})
	assert.Equal(t, Errors{
		FieldUsername:        "O usuário deve ter pelo menos 3 caracteres.",
		FieldConfirmPassword: MsgPasswordMismatch,
	}, errs)
}

func TestRegister_FullName(t *testing.T) {
	reg, errs := Register(RegisterInput{
		LoginInput:      LoginInput{Username: " bob ", Password: "secret1"},
		FullName:        "   ",
		ConfirmPassword: "secret1",
	})
	require.Nil(t, errs)
	assert.Nil(t, reg.FullName, "blank full name is absent")
	assert.Equal(t, "bob", reg.Username)

	reg, errs = Register(RegisterInput{
		LoginInput:      LoginInput{Username: "bob", Password: "secret1"},
		FullName:        "  Bob Builder ",
		ConfirmPassword: "secret1",
	})
	require.Nil(t, errs)
	require.NotNil(t, reg.FullName)
	assert.Equal(t, "Bob Builder", *reg.FullName)

	_, errs = Register(RegisterInput{
		LoginInput:      LoginInput{Username: "bob", Password: "secret1"},
		FullName:        strings.Repeat("n", 101),
		ConfirmPassword: "secret1",
	})
	assert.Equal(t, Errors{FieldFullName: "O nome deve ter no máximo 100 caracteres."}, errs)
}

func TestErrors_ErrorIsStable(t *testing.T) {
	e := Errors{FieldPassword: "b", FieldUsername: "a"}
	assert.Equal(t, "password: b; username: a", e.Error())
}
