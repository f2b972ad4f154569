package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridianapp/identity/gateway"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "a@b.com", password: "secret1", wantErr: false},
		{name: "minimum length password", email: "a@b.com", password: "123456", wantErr: false},
		{name: "empty email", email: "", password: "secret1", wantErr: true},
		{name: "no at sign", email: "a.b.com", password: "secret1", wantErr: true},
		{name: "no domain dot", email: "a@bcom", password: "secret1", wantErr: true},
		{name: "spaces in email", email: "a b@c.com", password: "secret1", wantErr: true},
		{name: "empty password", email: "a@b.com", password: "", wantErr: true},
		{name: "short password", email: "a@b.com", password: "12345", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := gateway.ValidateCredentials(tc.email, tc.password)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEmailTrimsWhitespace(t *testing.T) {
	require.NoError(t, gateway.ValidateEmail("  a@b.com  "))
}
