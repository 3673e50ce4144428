// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package forms

import "testing"

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name   string
		form   Login
		fields map[string]string
	}{
		{
			name: "valid",
			form: Login{Email: "alice@example.com", Password: "pw"},
		},
		{
			name:   "invalid email",
			form:   Login{Email: "not-an-email", Password: "pw"},
			fields: map[string]string{"email": "Invalid email address."},
		},
		{
			name:   "missing password",
			form:   Login{Email: "alice@example.com"},
			fields: map[string]string{"password": "Password is required."},
		},
		{
			name: "empty",
			form: Login{},
			fields: map[string]string{
				"email":    "Email is required.",
				"password": "Password is required.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFields(t, Validate(tt.form), tt.fields)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name   string
		form   Signup
		fields map[string]string
	}{
		{
			name: "valid",
			form: Signup{Email: "alice@example.com", Password: "secret6"},
		},
		{
			name:   "short password",
			form:   Signup{Email: "alice@example.com", Password: "12345"},
			fields: map[string]string{"password": "Password must be at least 6 characters."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkFields(t, Validate(tt.form), tt.fields)
		})
	}
}

func TestValidatePasswordReset(t *testing.T) {
	if fields := Validate(PasswordReset{Email: "alice@example.com"}); fields != nil {
		t.Errorf("fields = %v, want none", fields)
	}
	fields := Validate(PasswordReset{Email: "nope"})
	checkFields(t, fields, map[string]string{"email": "Invalid email address."})
}

func checkFields(t *testing.T, got map[string]string, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("fields[%q] = %q, want %q", field, got[field], msg)
		}
	}
}
