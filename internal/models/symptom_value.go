package models

import (
	"encoding/json"
	"strings"
)

// SymptomValueKind identifies which legacy encoding a symptom value
// arrived in. Four generations of clients wrote four shapes for the
// same logical concept; all of them are still present in stored rows.
type SymptomValueKind string

const (
	SymptomKindNumeric     SymptomValueKind = "numeric"
	SymptomKindBoolean     SymptomValueKind = "boolean"
	SymptomKindCategorical SymptomValueKind = "categorical"
	SymptomKindStructured  SymptomValueKind = "structured"

	// SymptomKindInvalid marks a value that could not be decoded.
	// Consumers skip it; the rest of the check-in stays usable.
	SymptomKindInvalid SymptomValueKind = ""
)

// SymptomValue is the tagged union over the four legacy encodings.
// Only the fields matching Kind carry meaning.
type SymptomValue struct {
	Kind     SymptomValueKind
	Number   float64
	Bool     bool
	Label    string
	Severity float64
	Location string
	Notes    string
}

type structuredSymptomValue struct {
	Severity *float64 `json:"severity"`
	Location string   `json:"location,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

func NumericSymptomValue(number float64) SymptomValue {
	return SymptomValue{Kind: SymptomKindNumeric, Number: number}
}

func BooleanSymptomValue(present bool) SymptomValue {
	return SymptomValue{Kind: SymptomKindBoolean, Bool: present}
}

func CategoricalSymptomValue(label string) SymptomValue {
	return SymptomValue{Kind: SymptomKindCategorical, Label: label}
}

func StructuredSymptomValue(severity float64, location string, notes string) SymptomValue {
	return SymptomValue{
		Kind:     SymptomKindStructured,
		Severity: severity,
		Location: location,
		Notes:    notes,
	}
}

// UnmarshalJSON detects the encoding from the raw JSON shape. A value
// that matches none of the known shapes decodes to SymptomKindInvalid
// instead of failing, so one malformed symptom never discards the
// check-in it belongs to.
func (value *SymptomValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*value = SymptomValue{Kind: SymptomKindInvalid}
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*value = NumericSymptomValue(number)
		return nil
	}

	var boolean bool
	if err := json.Unmarshal(data, &boolean); err == nil {
		*value = BooleanSymptomValue(boolean)
		return nil
	}

	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*value = CategoricalSymptomValue(label)
		return nil
	}

	var structured structuredSymptomValue
	if err := json.Unmarshal(data, &structured); err == nil && structured.Severity != nil {
		*value = StructuredSymptomValue(*structured.Severity, structured.Location, structured.Notes)
		return nil
	}

	*value = SymptomValue{Kind: SymptomKindInvalid}
	return nil
}

// MarshalJSON writes the value back in the shape it arrived in. The
// engine never rewrites stored encodings; migration of legacy shapes
// is a separate batch concern.
func (value SymptomValue) MarshalJSON() ([]byte, error) {
	switch value.Kind {
	case SymptomKindNumeric:
		return json.Marshal(value.Number)
	case SymptomKindBoolean:
		return json.Marshal(value.Bool)
	case SymptomKindCategorical:
		return json.Marshal(value.Label)
	case SymptomKindStructured:
		severity := value.Severity
		return json.Marshal(structuredSymptomValue{
			Severity: &severity,
			Location: value.Location,
			Notes:    value.Notes,
		})
	default:
		return []byte("null"), nil
	}
}

// IsPresent reports whether the value decoded to a usable encoding.
func (value SymptomValue) IsPresent() bool {
	return value.Kind != SymptomKindInvalid
}
