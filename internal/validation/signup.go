// Package validation checks signup form input before anything is persisted.
package validation

import "github.com/go-playground/validator/v10"

const (
	alphaErr                = "must only contain letters."
	lengthErr               = "must be between 1 and 10 characters."
	emailErr                = "Invalid email."
	passwordConfirmationErr = "Password's do not match."
)

// SignupForm carries the submitted signup fields. Name fields are expected to
// be trimmed by the caller before validation.
type SignupForm struct {
	FirstName            string
	LastName             string
	Username             string
	Password             string
	PasswordConfirmation string
	Admin                bool
}

var validate = validator.New()

// ValidateSignup returns every violated rule at once, in field order, so the
// form can be redisplayed with all messages alongside the submitted values.
// An empty slice means the form is valid.
func ValidateSignup(form SignupForm) []string {
	var errs []string

	errs = append(errs, validateName("First name", form.FirstName)...)
	errs = append(errs, validateName("Last name", form.LastName)...)

	if err := validate.Var(form.Username, "required,email"); err != nil {
		errs = append(errs, emailErr)
	}

	if err := validate.VarWithValue(form.PasswordConfirmation, form.Password, "eqfield"); err != nil {
		errs = append(errs, passwordConfirmationErr)
	}

	return errs
}

// validateName checks the two rules independently so a single field can
// report both violations, matching the collect-all contract.
func validateName(label, value string) []string {
	var errs []string
	if err := validate.Var(value, "required,alpha"); err != nil {
		errs = append(errs, label+" "+alphaErr)
	}
	if err := validate.Var(value, "required,max=10"); err != nil {
		errs = append(errs, label+" "+lengthErr)
	}
	return errs
}
