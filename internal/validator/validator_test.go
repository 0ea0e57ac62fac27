package validator

import "testing"

func TestValidate_LoginRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       LoginRequest
		wantField string
	}{
		{"valid", LoginRequest{Email: "arthit@student.university.example", Password: "x"}, ""},
		{"missing email", LoginRequest{Password: "x"}, "email"},
		{"malformed email", LoginRequest{Email: "not-an-email", Password: "x"}, "email"},
		{"missing password", LoginRequest{Email: "arthit@student.university.example"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Fatalf("unexpected validation errors: %v", errs)
				}
				return
			}
			if !errs.HasErrors() {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.wantField, errs)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		wantValid    bool
		wantStrength PasswordStrength
	}{
		{"all rules met", "Student123!@#", true, PasswordStrong},
		{"too short but varied", "Ab1!x", false, PasswordStrong},
		{"long with three classes", "abcdefgh123X", false, PasswordStrong},
		{"long lowercase digits", "abcdefgh1234", false, PasswordMedium},
		{"only lowercase", "abcdefghijkl", false, PasswordWeak},
		{"empty", "", false, PasswordWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPassword(tt.password)
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors: %v)", got.Valid, tt.wantValid, got.Errors)
			}
			if got.Strength != tt.wantStrength {
				t.Errorf("Strength = %q, want %q", got.Strength, tt.wantStrength)
			}
			if !got.Valid && len(got.Errors) == 0 {
				t.Error("invalid result carries no error messages")
			}
		})
	}
}

func TestValidateEvaluation_ScoreRange(t *testing.T) {
	v := New()

	req := &EvaluationRequest{
		ProjectID: "p1",
		Scores: []EvaluationScoreRequest{
			{Category: "Technical Implementation", Score: 55, MaxScore: 50},
		},
	}

	errs := v.ValidateEvaluation(req)
	if !errs.HasErrors() {
		t.Fatal("expected an error for score above maximum")
	}
}
