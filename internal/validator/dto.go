package validator

// LoginRequest is the credential-entry form payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EvaluationScoreRequest is one scored category of a committee evaluation.
type EvaluationScoreRequest struct {
	Category string  `json:"category" validate:"required"`
	Score    float64 `json:"score" validate:"gte=0"`
	MaxScore float64 `json:"max_score" validate:"gt=0"`
}

// EvaluationRequest is the committee evaluation form payload.
type EvaluationRequest struct {
	ProjectID string                   `json:"project_id" validate:"required"`
	Scores    []EvaluationScoreRequest `json:"scores" validate:"required,min=1,dive"`
	Comments  string                   `json:"comments" validate:"max=2000"`
}

// CoachingSessionRequest is the advisor session form payload.
type CoachingSessionRequest struct {
	ProjectID  string   `json:"project_id" validate:"required"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1"`
	Duration   int      `json:"duration" validate:"required,min=5,max=480"`
	Topics     []string `json:"topics" validate:"required,min=1"`
	Summary    string   `json:"summary" validate:"required,max=5000"`
}
