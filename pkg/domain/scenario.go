package domain

import "errors"

// ErrScenarioNotFound is returned when a scenario ID is not in the library.
var ErrScenarioNotFound = errors.New("scenario not found")

// Scenario is a named, reusable algorithm input.
type Scenario struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Algorithm   string `json:"algorithm,omitempty"`
	Speed       string `json:"speed,omitempty"`
	Input       Input  `json:"input"`
}
