package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	FirstName string `validate:"required"`
	LastName  string
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
}

// fieldErrors maps validation failures to lowercase field names. A nil map
// means the form is valid.
func (h *Handler) fieldErrors(form any) map[string]string {
	err := h.validator.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"general": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = describeField(fe)
	}
	return out
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	}
	return "Invalid value"
}
