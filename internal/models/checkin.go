package models

import "time"

// StructuredData is the parsed portion of a check-in. Symptoms map
// symptom names to their (possibly legacy-encoded) values; Activities
// and Triggers are free-form label sets. A nil Symptoms map is valid:
// the check-in still counts toward totals but contributes no symptom
// entries anywhere.
type StructuredData struct {
	Symptoms   map[string]SymptomValue `json:"symptoms"`
	Activities []string                `json:"activities"`
	Triggers   []string                `json:"triggers"`
	Notes      string                  `json:"notes"`
}

type CheckIn struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           string         `gorm:"not null;index" json:"user_id"`
	Timestamp        time.Time      `gorm:"not null;index" json:"timestamp"`
	Structured       StructuredData `gorm:"serializer:json" json:"structured"`
	FlaggedForDoctor bool           `gorm:"not null;default:false" json:"flagged_for_doctor"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
