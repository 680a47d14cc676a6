package handler

import (
	"strings"

	"dermis/internal/answers"
	"dermis/internal/retake"
	id "dermis/pkg/domain"
	dErrors "dermis/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /v1/profile/evaluate.
type EvaluateRequest struct {
	UserID  string         `json:"user_id"`
	Answers map[string]any `json:"answers"`

	// Parsed values (populated by Validate)
	parsedUserID  id.UserID
	parsedAnswers answers.Map
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID

	if len(r.Answers) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "answers are required")
	}
	r.parsedAnswers = answers.FromAnyMap(r.Answers)
	return nil
}

// RetakeRequest is the HTTP request body for POST /v1/profile/retake.
type RetakeRequest struct {
	UserID       string         `json:"user_id"`
	Topic        string         `json:"topic"`
	Answers      map[string]any `json:"answers"`
	ChangedCodes []string       `json:"changed_codes"`

	parsedUserID  id.UserID
	parsedAnswers answers.Map
}

// Validate validates and parses the request.
func (r *RetakeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID

	r.Topic = strings.ToLower(strings.TrimSpace(r.Topic))
	if r.Topic == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "topic is required")
	}
	if _, ok := retake.TopicByCode(r.Topic); !ok {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown topic %q", r.Topic)
	}

	if len(r.Answers) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "answers are required")
	}
	r.parsedAnswers = answers.FromAnyMap(r.Answers)
	return nil
}
