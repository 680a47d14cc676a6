// Package retake classifies profile changes between questionnaire submissions
// and scopes axis recalculation for partial (topic) retakes.
//
// Two independent binary decisions drive everything: did the profile change
// critically (full plan rebuild), and did a safety-relevant field change
// (existing plan unsafe until regenerated). Both compare a fixed field list,
// arrays as sets and scalars by equality, and both treat a missing prior
// profile as the most conservative answer.
package retake

import (
	"dermis/internal/axis"
	"dermis/internal/profile"
	"dermis/internal/taxonomy"
)

// RebuildReason classifies why, or whether, a plan rebuild is required.
type RebuildReason string

const (
	ReasonTopicRequiresPlan RebuildReason = "topic_requires_plan"
	ReasonProfileCreated    RebuildReason = "profile_created"
	ReasonCriticalChange    RebuildReason = "critical_change"
	ReasonNone              RebuildReason = "none"
)

// RebuildDecision is the composed outcome exposed to the pipeline.
type RebuildDecision struct {
	Requires bool          `json:"requires"`
	Reason   RebuildReason `json:"reason"`
}

// ProfileChangedCritically reports whether any field on the fixed critical
// list differs between the prior and new profile. A nil prior profile is
// always critical (profile creation).
func ProfileChangedCritically(prior *profile.SkinProfile, next profile.SkinProfile) bool {
	if prior == nil {
		return true
	}
	if prior.SkinType != next.SkinType {
		return true
	}
	if prior.Sensitivity != next.Sensitivity {
		return true
	}
	if !sameGoalSet(prior.MainGoals, next.MainGoals) {
		return true
	}
	if !sameStringSet(prior.Diagnoses, next.Diagnoses) {
		return true
	}
	if prior.PregnancyStatus != next.PregnancyStatus {
		return true
	}
	if !sameStringSet(prior.Contraindications, next.Contraindications) {
		return true
	}
	if !sameStringSet(prior.CurrentTopicals, next.CurrentTopicals) {
		return true
	}
	if !sameStringSet(prior.CurrentOralMeds, next.CurrentOralMeds) {
		return true
	}
	return false
}

// RequiresSafetyLock reports whether a safety-relevant field changed, in
// which case the previously generated plan must not be shown until a new one
// is produced. Independent of whether a rebuild was otherwise scheduled.
func RequiresSafetyLock(prior *profile.SkinProfile, next profile.SkinProfile) bool {
	if prior == nil {
		return true
	}
	if prior.PregnancyStatus != next.PregnancyStatus {
		return true
	}
	if !sameStringSet(prior.Diagnoses, next.Diagnoses) {
		return true
	}
	if !sameStringSet(prior.Contraindications, next.Contraindications) {
		return true
	}
	if !sameStringSet(prior.CurrentTopicals, next.CurrentTopicals) {
		return true
	}
	if !sameStringSet(prior.CurrentOralMeds, next.CurrentOralMeds) {
		return true
	}
	if prior.Sensitivity != next.Sensitivity {
		return true
	}
	return false
}

// RequiresPlanRebuild composes the rebuild decision. Precedence is fixed:
// plan-affecting topic, then profile creation, then critical change, then
// nothing.
func RequiresPlanRebuild(topicCode string, prior *profile.SkinProfile, next profile.SkinProfile) RebuildDecision {
	if t, ok := TopicByCode(topicCode); ok && t.PlanAffecting {
		return RebuildDecision{Requires: true, Reason: ReasonTopicRequiresPlan}
	}
	if prior == nil {
		return RebuildDecision{Requires: true, Reason: ReasonProfileCreated}
	}
	if ProfileChangedCritically(prior, next) {
		return RebuildDecision{Requires: true, Reason: ReasonCriticalChange}
	}
	return RebuildDecision{Requires: false, Reason: ReasonNone}
}

// RecalculateAxesScoped recomputes only the axes the retaken topic declares,
// inheriting every other axis verbatim from the prior set. A topic declaring
// zero axes, or an unknown topic, recomputes everything. The axis universe is
// the union of names seen in the fresh and prior sets, fresh order first, so
// new axes flow through without changes here.
func RecalculateAxesScoped(topicCode string, newAnswers axis.Record, prior []axis.Score) []axis.Score {
	fresh := axis.ScoreAll(newAnswers)

	topic, known := TopicByCode(topicCode)
	if !known || len(topic.AffectsAxes) == 0 {
		return fresh
	}

	affected := make(map[axis.Name]struct{}, len(topic.AffectsAxes))
	for _, n := range topic.AffectsAxes {
		affected[n] = struct{}{}
	}

	priorByName := axis.ByName(prior)
	out := make([]axis.Score, 0, len(fresh)+len(prior))
	seen := make(map[axis.Name]struct{}, len(fresh)+len(prior))

	for _, f := range fresh {
		seen[f.Axis] = struct{}{}
		if _, hit := affected[f.Axis]; hit {
			out = append(out, f)
			continue
		}
		if p, ok := priorByName[f.Axis]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, f)
	}
	// Prior-only axes survive a scoped retake untouched.
	for _, p := range prior {
		if _, dup := seen[p.Axis]; dup {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

func sameGoalSet(a, b []taxonomy.GoalKey) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[taxonomy.GoalKey]struct{}, len(a))
	for _, g := range a {
		set[g] = struct{}{}
	}
	for _, g := range b {
		if _, ok := set[g]; !ok {
			return false
		}
	}
	return true
}
