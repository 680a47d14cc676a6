// Package axis scores questionnaire answers along six fixed physiological
// dimensions. Scoring is pure: the same record always produces the same six
// scores, missing or malformed fields contribute nothing, and nothing here
// errors.
package axis

// Name identifies one of the six scoring dimensions.
type Name string

const (
	Oiliness     Name = "oiliness"
	Hydration    Name = "hydration"
	Barrier      Name = "barrier"
	Inflammation Name = "inflammation"
	Pigmentation Name = "pigmentation"
	Photoaging   Name = "photoaging"
)

// Names returns the six axes in report order.
func Names() []Name {
	return []Name{Oiliness, Hydration, Barrier, Inflammation, Pigmentation, Photoaging}
}

// Level buckets a severity value.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// LevelFor buckets a 0..100 severity value.
func LevelFor(v int) Level {
	switch {
	case v < 30:
		return LevelLow
	case v < 55:
		return LevelMedium
	case v < 80:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Score is one axis result.
//
// Two axes report an obverse quantity, and they do it asymmetrically:
//   - Hydration: Value holds 100−raw (dehydration severity) and Level buckets
//     that inverted value.
//   - Barrier: Value holds the raw, non-inverted score, but Level buckets
//     100−raw (barrier weakness).
//
// Downstream severity thresholds depend on exactly this split; see the
// per-axis contract test before changing either direction.
type Score struct {
	Axis  Name  `json:"axis"`
	Value int   `json:"value"`
	Level Level `json:"level"`
}

// Record is the loosely-typed answer snapshot the engine scores. Unset fields
// mean "no evidence" and leave every axis at its baseline contribution.
type Record struct {
	SkinType        string
	Age             int
	Concerns        []string
	Diagnoses       []string
	Habits          []string
	Allergies       []string
	Season          string
	RetinolReaction string
	PregnancyStatus string
	SPFUsage        string
	SunExposure     string
	Sensitivity     string
	AcneLevel       int
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ScoreAll computes the six axis scores in fixed report order.
func ScoreAll(rec Record) []Score {
	oiliness := clamp(rawOiliness(rec))
	hydration := clamp(rawHydration(rec))
	barrier := clamp(rawBarrier(rec))
	inflammation := clamp(rawInflammation(rec))
	pigmentation := clamp(rawPigmentation(rec))
	photoaging := clamp(rawPhotoaging(rec))

	return []Score{
		{Axis: Oiliness, Value: oiliness, Level: LevelFor(oiliness)},
		// Hydration reports dehydration severity: value and level both invert.
		{Axis: Hydration, Value: 100 - hydration, Level: LevelFor(100 - hydration)},
		// Barrier keeps the raw value but levels on barrier weakness.
		{Axis: Barrier, Value: barrier, Level: LevelFor(100 - barrier)},
		{Axis: Inflammation, Value: inflammation, Level: LevelFor(inflammation)},
		{Axis: Pigmentation, Value: pigmentation, Level: LevelFor(pigmentation)},
		{Axis: Photoaging, Value: photoaging, Level: LevelFor(photoaging)},
	}
}

// ByName indexes a score slice by axis name.
func ByName(scores []Score) map[Name]Score {
	out := make(map[Name]Score, len(scores))
	for _, s := range scores {
		out[s.Axis] = s
	}
	return out
}
