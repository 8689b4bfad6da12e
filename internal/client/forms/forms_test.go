package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginValues_Valid(t *testing.T) {
	v := LoginValues{Email: "a@b.com", Password: "pw"}
	require.NoError(t, v.Validate())
}

func TestLoginValues_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values LoginValues
		want   string
	}{
		{
			name:   "missing email",
			values: LoginValues{Password: "pw"},
			want:   "Email is required",
		},
		{
			name:   "malformed email",
			values: LoginValues{Email: "not-an-email", Password: "pw"},
			want:   "Email must be a valid email address",
		},
		{
			name:   "missing password",
			values: LoginValues{Email: "a@b.com"},
			want:   "Password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.values.Validate()
			require.Error(t, err)
			require.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRegisterValues_Valid(t *testing.T) {
	v := RegisterValues{
		Firstname:       "Carol",
		Lastname:        "Jones",
		Username:        "carol",
		Email:           "c@d.com",
		Password:        "pw",
		PasswordConfirm: "pw",
	}
	require.NoError(t, v.Validate())
}

func TestRegisterValues_PasswordMismatchRejected(t *testing.T) {
	v := RegisterValues{
		Firstname:       "Carol",
		Lastname:        "Jones",
		Username:        "carol",
		Email:           "c@d.com",
		Password:        "pw",
		PasswordConfirm: "other",
	}
	err := v.Validate()
	require.Error(t, err)
	require.Equal(t, "Passwords do not match", err.Error())
}

func TestRegisterValues_RequiredFields(t *testing.T) {
	err := RegisterValues{}.Validate()
	require.Error(t, err)
	require.Equal(t, "First name is required", err.Error(), "first violation wins")
}
