// Package domainctx assembles the single immutable read-model every
// downstream decision consumes.
//
// Critical rule: axis scores are derived solely from the raw answers of the
// current submission. The profile snapshot supplies only medical markers,
// preferences, and fields the current batch did not touch. It is a display
// artifact, never a source of truth for scoring.
package domainctx

import (
	"time"

	"dermis/internal/answers"
	"dermis/internal/axis"
	"dermis/internal/catalog"
	"dermis/internal/profile"
	"dermis/internal/taxonomy"
	id "dermis/pkg/domain"
)

// Meta identifies one decision request.
type Meta struct {
	RequestID      string            `json:"request_id"`
	UserID         id.UserID         `json:"user_id"`
	ProfileVersion id.ProfileVersion `json:"profile_version"`
	Topic          string            `json:"topic,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// Context is the assembled read-model for one decision. It is built fresh per
// request and never persisted.
type Context struct {
	Meta        Meta
	RawAnswers  answers.Map
	Profile     profile.SkinProfile
	Axes        []axis.Score
	Medical     profile.MedicalMarkers
	Preferences profile.Preferences
	CatalogRef  catalog.Ref
	Trace       []string
}

// Build assembles a Context from the current submission and the prior
// snapshot. snapshot may be nil (first submission).
func Build(meta Meta, raw answers.Map, snapshot *profile.SkinProfile, catRef catalog.Ref) Context {
	resolved := raw.Resolve()
	trace := make([]string, 0, 4)

	rec := ToRecord(resolved)
	scores := axis.ScoreAll(rec)
	trace = append(trace, "axes computed from raw answers")

	prof := BuildProfile(meta, resolved, snapshot, scores)
	if snapshot != nil {
		trace = append(trace, "snapshot fields inherited where unanswered")
	}

	medical := buildMedical(resolved, snapshot)
	prefs := buildPreferences(resolved, prof)

	return Context{
		Meta:        meta,
		RawAnswers:  resolved,
		Profile:     prof,
		Axes:        scores,
		Medical:     medical,
		Preferences: prefs,
		CatalogRef:  catRef,
		Trace:       trace,
	}
}

// ToRecord coerces a resolved answer map into the axis engine's input shape.
// Absent or mis-shaped fields stay at their zero values ("no evidence").
func ToRecord(resolved answers.Map) axis.Record {
	return axis.Record{
		SkinType:        resolved.Get(answers.FieldSkinType).ScalarOr(""),
		Age:             resolved.Get(answers.FieldAge).Int(0),
		Concerns:        resolved.Get(answers.FieldConcerns).AsList(),
		Diagnoses:       resolved.Get(answers.FieldDiagnoses).AsList(),
		Habits:          resolved.Get(answers.FieldHabits).AsList(),
		Allergies:       resolved.Get(answers.FieldAllergies).AsList(),
		Season:          resolved.Get(answers.FieldSeason).ScalarOr(""),
		RetinolReaction: resolved.Get(answers.FieldRetinolReaction).ScalarOr(""),
		PregnancyStatus: resolved.Get(answers.FieldPregnancyStatus).ScalarOr(""),
		SPFUsage:        resolved.Get(answers.FieldSPFUsage).ScalarOr(""),
		SunExposure:     resolved.Get(answers.FieldSunExposure).ScalarOr(""),
		Sensitivity:     resolved.Get(answers.FieldSensitivity).ScalarOr(""),
		AcneLevel:       resolved.Get(answers.FieldAcneLevel).Int(0),
	}
}

// BuildProfile derives the normalized profile for this submission, carrying
// forward snapshot fields the batch did not answer.
func BuildProfile(meta Meta, resolved answers.Map, snapshot *profile.SkinProfile, scores []axis.Score) profile.SkinProfile {
	var p profile.SkinProfile
	p.UserID = meta.UserID
	p.Version = meta.ProfileVersion
	p.CreatedAt = meta.GeneratedAt

	concerns := taxonomy.NormalizeConcerns(resolved.Get(answers.FieldConcerns).AsList())

	if st, ok := taxonomy.NormalizeSkinType(resolved.Get(answers.FieldSkinType).ScalarOr("")); ok {
		p.SkinType = st
	} else if snapshot != nil {
		p.SkinType = snapshot.SkinType
	}

	if sens, ok := taxonomy.NormalizeSensitivity(resolved.Get(answers.FieldSensitivity).ScalarOr("")); ok {
		p.Sensitivity = sens
	} else if snapshot != nil {
		p.Sensitivity = snapshot.Sensitivity
	}

	if ag, ok := taxonomy.NormalizeAgeGroup(resolved.Get(answers.FieldAge).ScalarOr("")); ok {
		p.AgeGroup = ag
	} else if snapshot != nil {
		p.AgeGroup = snapshot.AgeGroup
	}

	if goals := taxonomy.NormalizeGoals(resolved.Get(answers.FieldGoals).AsList()); len(goals) > 0 {
		p.MainGoals = goals
	} else if snapshot != nil {
		p.MainGoals = snapshot.MainGoals
	}
	if goals := taxonomy.NormalizeGoals(resolved.Get(answers.FieldSecondaryGoals).AsList()); len(goals) > 0 {
		p.SecondaryGoals = goals
	} else if snapshot != nil {
		p.SecondaryGoals = snapshot.SecondaryGoals
	}

	if v := resolved.Get(answers.FieldDiagnoses).AsList(); len(v) > 0 {
		p.Diagnoses = v
	} else if snapshot != nil {
		p.Diagnoses = snapshot.Diagnoses
	}

	if preg, err := id.ParsePregnancyStatus(resolved.Get(answers.FieldPregnancyStatus).ScalarOr("")); err == nil && !resolved.Get(answers.FieldPregnancyStatus).IsZero() {
		p.PregnancyStatus = preg
	} else if snapshot != nil {
		p.PregnancyStatus = snapshot.PregnancyStatus
	}

	if v := resolved.Get(answers.FieldContraindications).AsList(); len(v) > 0 {
		p.Contraindications = v
	} else if snapshot != nil {
		p.Contraindications = snapshot.Contraindications
	}
	if v := resolved.Get(answers.FieldCurrentTopicals).AsList(); len(v) > 0 {
		p.CurrentTopicals = v
	} else if snapshot != nil {
		p.CurrentTopicals = snapshot.CurrentTopicals
	}
	if v := resolved.Get(answers.FieldCurrentOralMeds).AsList(); len(v) > 0 {
		p.CurrentOralMeds = v
	} else if snapshot != nil {
		p.CurrentOralMeds = snapshot.CurrentOralMeds
	}

	if v := resolved.Get(answers.FieldSPFUsage).ScalarOr(""); v != "" {
		p.SPFHabit = v
	} else if snapshot != nil {
		p.SPFHabit = snapshot.SPFHabit
	}
	if v := resolved.Get(answers.FieldMakeupHabit).ScalarOr(""); v != "" {
		p.MakeupHabit = v
	} else if snapshot != nil {
		p.MakeupHabit = snapshot.MakeupHabit
	}
	if v := resolved.Get(answers.FieldRoutineComplexity).ScalarOr(""); v != "" {
		p.RoutineComplexity = profile.RoutineComplexity(v)
	} else if snapshot != nil {
		p.RoutineComplexity = snapshot.RoutineComplexity
	}
	if v := resolved.Get(answers.FieldBudgetSegment).ScalarOr(""); v != "" {
		p.BudgetSegment = profile.BudgetSegment(v)
	} else if snapshot != nil {
		p.BudgetSegment = snapshot.BudgetSegment
	}
	if v := resolved.Get(answers.FieldCarePreference).ScalarOr(""); v != "" {
		p.CarePreference = v
	} else if snapshot != nil {
		p.CarePreference = snapshot.CarePreference
	}
	if v := resolved.Get(answers.FieldGender).ScalarOr(""); v != "" {
		p.Gender = v
	} else if snapshot != nil {
		p.Gender = snapshot.Gender
	}

	p.PrimaryFocus = taxonomy.NormalizePrimaryFocus("", concerns)
	p.Axes = scores
	p.ApplyDefaults()
	return p
}

func buildMedical(resolved answers.Map, snapshot *profile.SkinProfile) profile.MedicalMarkers {
	var m profile.MedicalMarkers
	if v := resolved.Get(answers.FieldAllergies).AsList(); len(v) > 0 {
		m.Allergies = v
	}
	diagnoses := resolved.Get(answers.FieldDiagnoses).AsList()
	if snapshot != nil && len(diagnoses) == 0 {
		diagnoses = snapshot.Diagnoses
	}
	for _, d := range diagnoses {
		low := lower(d)
		if contains(low, "розацеа", "rosacea") {
			m.RosaceaRisk = true
		}
		if contains(low, "атопи", "atopic", "экзема", "eczema") {
			m.AtopyRisk = true
		}
	}
	m.ApplyDefaults()
	return m
}

func buildPreferences(resolved answers.Map, prof profile.SkinProfile) profile.Preferences {
	var prefs profile.Preferences
	prefs.BudgetSegment = prof.BudgetSegment
	prefs.RoutineComplexity = prof.RoutineComplexity
	prefs.DislikedIngredients = taxonomy.NormalizeIngredients(resolved.Get(answers.FieldDislikedItems).AsList())
	prefs.ApplyDefaults()
	return prefs
}
