package models

import "time"

// SequenceCounter stores the last issued value of a named daily counter,
// e.g. "quotes:2026-10-14".
type SequenceCounter struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
