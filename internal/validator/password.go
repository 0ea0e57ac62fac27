package validator

import "strings"

type PasswordStrength string

const (
	PasswordWeak   PasswordStrength = "weak"
	PasswordMedium PasswordStrength = "medium"
	PasswordStrong PasswordStrength = "strong"
)

type PasswordResult struct {
	Valid    bool             `json:"valid"`
	Errors   []string         `json:"errors,omitempty"`
	Strength PasswordStrength `json:"strength"`
}

const minPasswordLength = 10

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// CheckPassword scores a password against the platform rules: at least ten
// characters with a digit, a lowercase letter, an uppercase letter and a
// special character.
func CheckPassword(password string) PasswordResult {
	var errs []string
	score := 0

	if len(password) < minPasswordLength {
		errs = append(errs, "password must be at least 10 characters long")
	} else {
		score++
	}

	checks := []struct {
		ok  bool
		msg string
	}{
		{strings.ContainsAny(password, "0123456789"), "password must contain at least one digit"},
		{strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz"), "password must contain at least one lowercase letter"},
		{strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "password must contain at least one uppercase letter"},
		{strings.ContainsAny(password, specialChars), "password must contain at least one special character"},
	}
	for _, c := range checks {
		if c.ok {
			score++
		} else {
			errs = append(errs, c.msg)
		}
	}

	strength := PasswordWeak
	switch {
	case score >= 4:
		strength = PasswordStrong
	case score >= 3:
		strength = PasswordMedium
	}

	return PasswordResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Strength: strength,
	}
}

// ValidateEvaluation combines struct validation with the score-range rule
// that each category score stays within its maximum.
func (v *Validator) ValidateEvaluation(req *EvaluationRequest) ValidationErrors {
	errs := v.Validate(req)
	for _, s := range req.Scores {
		if s.Score > s.MaxScore {
			errs = append(errs, ValidationError{
				Field:   "scores",
				Message: "score exceeds the category maximum",
			})
		}
	}
	return errs
}
