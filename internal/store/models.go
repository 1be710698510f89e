package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}

	// Handle empty or null JSON
	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Issue is one finding recorded by an analysis
type Issue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Suggestion is one recommended improvement recorded by an analysis
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Issues is stored as a JSONB array
type Issues []Issue

// Value implements the driver.Valuer interface for Issues
func (i Issues) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Issue(i))
}

// Scan implements the sql.Scanner interface for Issues
func (i *Issues) Scan(value interface{}) error {
	var out []Issue
	if err := scanJSONArray(value, &out); err != nil {
		return err
	}
	*i = out
	return nil
}

// Suggestions is stored as a JSONB array
type Suggestions []Suggestion

// Value implements the driver.Valuer interface for Suggestions
func (s Suggestions) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Suggestion(s))
}

// Scan implements the sql.Scanner interface for Suggestions
func (s *Suggestions) Scan(value interface{}) error {
	var out []Suggestion
	if err := scanJSONArray(value, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

func scanJSONArray(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("incompatible type for JSON column: %T", value)
	}
}
