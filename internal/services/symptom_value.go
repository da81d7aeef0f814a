package services

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jmcateer/pulselog/internal/models"
)

const (
	// Severity bounds of the canonical 1-10 scale.
	minSeverity = 1
	maxSeverity = 10

	// Fixed mapping for boolean values: present implies moderate-high
	// severity, absent implies low. A design constant, not a measured
	// scale.
	booleanPresentSeverity = 7
	booleanAbsentSeverity  = 1

	// Fallback for categorical labels missing from the dictionary.
	unknownLabelSeverity = 5
)

// categoricalSeverities maps free-text severity labels to canonical
// values. Labels outside this dictionary fall back to
// unknownLabelSeverity with a diagnostic log entry.
var categoricalSeverities = map[string]float64{
	"none":     1,
	"good":     2,
	"mild":     3,
	"slight":   3,
	"low":      3,
	"okay":     4,
	"moderate": 5,
	"medium":   5,
	"high":     7,
	"bad":      8,
	"severe":   9,
	"awful":    9,
	"terrible": 10,
}

// SymptomType classifies how a symptom is encoded across a collection
// of check-ins, for display and grouping.
type SymptomType string

const (
	SymptomTypeNumeric     SymptomType = "numeric"
	SymptomTypeBoolean     SymptomType = "boolean"
	SymptomTypeCategorical SymptomType = "categorical"
)

// CanonicalSymptom is the shape every downstream computation consumes.
type CanonicalSymptom struct {
	Severity float64 `json:"severity"`
	Location string  `json:"location,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// NormalizeSymptomValue converts any legacy encoding to the canonical
// shape. The false return means the value is unparseable and must be
// omitted from aggregates; it is never silently defaulted. The single
// documented exception is an unrecognized categorical label, which
// maps to severity 5 and logs a diagnostic.
func NormalizeSymptomValue(name string, value models.SymptomValue) (CanonicalSymptom, bool) {
	switch value.Kind {
	case models.SymptomKindNumeric:
		return CanonicalSymptom{Severity: clampSeverity(value.Number)}, true
	case models.SymptomKindBoolean:
		if value.Bool {
			return CanonicalSymptom{Severity: booleanPresentSeverity}, true
		}
		return CanonicalSymptom{Severity: booleanAbsentSeverity}, true
	case models.SymptomKindCategorical:
		return CanonicalSymptom{Severity: severityForLabel(name, value.Label)}, true
	case models.SymptomKindStructured:
		return CanonicalSymptom{
			Severity: clampSeverity(value.Severity),
			Location: value.Location,
			Notes:    value.Notes,
		}, true
	default:
		return CanonicalSymptom{}, false
	}
}

// ClassifySymptomType votes over every present value of a symptom:
// all boolean wins BOOLEAN, otherwise all numeric-shaped wins NUMERIC,
// otherwise the conservative default CATEGORICAL. Invalid values are
// excluded from the vote.
func ClassifySymptomType(values []models.SymptomValue) SymptomType {
	present := 0
	booleans := 0
	numerics := 0
	for _, value := range values {
		switch value.Kind {
		case models.SymptomKindBoolean:
			present++
			booleans++
		case models.SymptomKindNumeric, models.SymptomKindStructured:
			present++
			numerics++
		case models.SymptomKindCategorical:
			present++
		}
	}

	switch {
	case present > 0 && booleans == present:
		return SymptomTypeBoolean
	case present > 0 && numerics == present:
		return SymptomTypeNumeric
	default:
		return SymptomTypeCategorical
	}
}

// NumericSymptomValue extracts the raw number behind a value when it
// has one: bare numerics as stored, structured values via their
// severity field. Booleans and labels are not numeric-coercible.
func NumericSymptomValue(value models.SymptomValue) (float64, bool) {
	switch value.Kind {
	case models.SymptomKindNumeric:
		return value.Number, true
	case models.SymptomKindStructured:
		return value.Severity, true
	default:
		return 0, false
	}
}

// DisplaySymptomValue renders a value the way a categorical grouping
// shows it.
func DisplaySymptomValue(value models.SymptomValue) string {
	switch value.Kind {
	case models.SymptomKindNumeric:
		return strconv.FormatFloat(value.Number, 'f', -1, 64)
	case models.SymptomKindBoolean:
		if value.Bool {
			return "true"
		}
		return "false"
	case models.SymptomKindCategorical:
		return value.Label
	case models.SymptomKindStructured:
		return strconv.FormatFloat(value.Severity, 'f', -1, 64)
	default:
		return ""
	}
}

func severityForLabel(name string, label string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if severity, known := categoricalSeverities[normalized]; known {
		return severity
	}
	log.Warn().
		Str("symptom", name).
		Str("label", label).
		Float64("fallback_severity", unknownLabelSeverity).
		Msg("unrecognized categorical severity label")
	return unknownLabelSeverity
}

func clampSeverity(severity float64) float64 {
	if severity < minSeverity {
		return minSeverity
	}
	if severity > maxSeverity {
		return maxSeverity
	}
	return severity
}
