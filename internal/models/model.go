package models

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is returned when a score file names a model that is not in the model list.
var ErrUnknownModel = errors.New("unknown model")

// Model is one entry of the published model list.
type Model struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Provider string `json:"provider,omitempty"`
	URL      string `json:"url,omitempty"`
}

// DisplayName returns the human readable name, falling back to the ID.
func (m Model) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// ModelLookup maps model IDs to their metadata.
type ModelLookup map[string]Model

// NewModelLookup indexes models by ID. Later duplicates win.
func NewModelLookup(list []Model) ModelLookup {
	lookup := make(ModelLookup, len(list))
	for _, m := range list {
		lookup[m.ID] = m
	}
	return lookup
}

// Lookup returns the model with the given ID or an error wrapping ErrUnknownModel.
func (l ModelLookup) Lookup(id string) (Model, error) {
	m, ok := l[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return m, nil
}
