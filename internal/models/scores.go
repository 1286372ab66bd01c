package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ScoreFile is the decoded scores.json a model publishes for the CoT benchmark.
type ScoreFile struct {
	Average float64      `json:"average"`
	GSM8K   float64      `json:"gsm8k"`
	BBH     SuiteScores  `json:"bbh"`
	MMLU    *SuiteScores `json:"mmlu,omitempty"`
}

// SuiteScores holds the scores of a benchmark made of several sub-tasks.
// Tasks keeps the key order of the source file.
type SuiteScores struct {
	Average float64                                 `json:"average"`
	Tasks   *orderedmap.OrderedMap[string, float64] `json:"tasks"`
}

// TaskNames returns the task names in file order.
func (s SuiteScores) TaskNames() []string {
	if s.Tasks == nil {
		return nil
	}
	names := make([]string, 0, s.Tasks.Len())
	for pair := s.Tasks.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Task returns the score of a single task.
func (s SuiteScores) Task(name string) (float64, bool) {
	if s.Tasks == nil {
		return 0, false
	}
	return s.Tasks.Get(name)
}

// ScoreEntry pairs a model ID with its score file.
type ScoreEntry struct {
	ModelID string
	Scores  ScoreFile
}
