package handler

import (
	"dermis/internal/axis"
	"dermis/internal/pipeline"
	"dermis/internal/recommend"
)

// EvaluateResponse is the HTTP response body for evaluate and retake calls.
type EvaluateResponse struct {
	ProfileVersion int                 `json:"profile_version"`
	PrimaryFocus   string              `json:"primary_focus"`
	Axes           []axis.Score        `json:"axes"`
	Rule           RuleResponse        `json:"recommendation"`
	Plan           PlanResponse        `json:"care_plan"`
	Validation     ValidationResponse  `json:"validation"`
	Rebuild        RebuildResponse     `json:"rebuild"`
	SafetyLock     bool                `json:"safety_lock"`
}

// RuleResponse is the matched recommendation rule.
type RuleResponse struct {
	ID      string               `json:"id"`
	Default bool                 `json:"default"`
	Steps   []recommend.CareStep `json:"steps"`
}

// PlanResponse is the selected care plan skeleton.
type PlanResponse struct {
	TemplateID   string   `json:"template_id"`
	MorningSteps []string `json:"morning_steps"`
	EveningSteps []string `json:"evening_steps"`
	WeeklySteps  []string `json:"weekly_steps,omitempty"`
}

// ValidationResponse reports profile consistency checks.
type ValidationResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// RebuildResponse reports the plan rebuild decision.
type RebuildResponse struct {
	Requires bool   `json:"requires"`
	Reason   string `json:"reason"`
}

// FromResult maps a pipeline result to the HTTP response.
func FromResult(res *pipeline.EvaluateResult) EvaluateResponse {
	return EvaluateResponse{
		ProfileVersion: int(res.Profile.Version),
		PrimaryFocus:   string(res.Profile.PrimaryFocus),
		Axes:           res.Context.Axes,
		Rule: RuleResponse{
			ID:      res.Rule.ID,
			Default: res.UsedDefaultRule,
			Steps:   res.Rule.Steps,
		},
		Plan: PlanResponse{
			TemplateID:   res.Plan.ID,
			MorningSteps: res.Plan.MorningSteps,
			EveningSteps: res.Plan.EveningSteps,
			WeeklySteps:  res.Plan.WeeklySteps,
		},
		Validation: ValidationResponse{
			IsValid:  res.Validation.IsValid,
			Errors:   res.Validation.Errors,
			Warnings: res.Validation.Warnings,
		},
		Rebuild: RebuildResponse{
			Requires: res.Rebuild.Requires,
			Reason:   string(res.Rebuild.Reason),
		},
		SafetyLock: res.SafetyLock,
	}
}
