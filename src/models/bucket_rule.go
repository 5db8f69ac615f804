package models

import (
	"encoding/json"
	"time"
)

// Condition is a JSON condition tree evaluated against a transaction.
type Condition struct {
	Field string      `json:"field,omitempty"`
	Op    string      `json:"op,omitempty"`
	Value interface{} `json:"value,omitempty"`
	And   []Condition `json:"and,omitempty"`
	Or    []Condition `json:"or,omitempty"`
}

// BucketRule assigns a bucket to every transaction matching its conditions.
type BucketRule struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	Name       string          `json:"name"`
	Conditions json.RawMessage `json:"conditions"` // JSONB
	Bucket     Bucket          `json:"bucket"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
