// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package forms declares the auth form schemas and maps them to field-level
// validation messages. Each form is independent.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Login is the email/password sign-in form.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup is the email/password sign-up form.
type Signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// PasswordReset is the reset-email dispatch form.
type PasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}

var validate = validator.New()

// Validate checks a form and returns field-level error messages keyed by the
// lowercased field name, or nil when the form is valid.
func Validate(form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": "Invalid request."}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is required.", fe.Field())
	}
}
