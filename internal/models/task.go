package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskResult is the per-model, per-task detail file.
type TaskResult struct {
	Score        float64       `json:"score"`
	ModelOutputs []ModelOutput `json:"model_outputs"`
}

// ModelOutput is one recorded sample. Correct is authoritative and never recomputed.
type ModelOutput struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	CorrectAnswer Answer `json:"correct_answer"`
	ModelAnswer   string `json:"model_answer"`
	Correct       bool   `json:"correct"`
}

// Answer is an expected answer. Producers write it either as a string or as a number
// (multiple-choice indices), so both decode to text.
type Answer string

// UnmarshalJSON accepts a JSON string, number or null.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("correct_answer must be a string or number: %w", err)
	}
	*a = Answer(n.String())
	return nil
}

// String returns the answer text.
func (a Answer) String() string {
	return string(a)
}
