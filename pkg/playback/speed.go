package playback

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownSpeed is returned when a speed label is not in the driver's menu.
var ErrUnknownSpeed = errors.New("unknown speed")

// Speed is one entry of the playback speed menu.
type Speed struct {
	Label string        `json:"label" yaml:"label"`
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// DefaultSpeedLabel is selected when no speed is configured.
const DefaultSpeedLabel = "1x"

// DefaultSpeeds is the menu used when none is configured.
func DefaultSpeeds() []Speed {
	return []Speed{
		{Label: "0.5x", Delay: 1200 * time.Millisecond},
		{Label: "1x", Delay: 600 * time.Millisecond},
		{Label: "1.5x", Delay: 400 * time.Millisecond},
		{Label: "2x", Delay: 300 * time.Millisecond},
		{Label: "3x", Delay: 200 * time.Millisecond},
	}
}

func lookupSpeed(menu []Speed, label string) (Speed, error) {
	for _, s := range menu {
		if s.Label == label {
			return s, nil
		}
	}
	return Speed{}, fmt.Errorf("%q: %w", label, ErrUnknownSpeed)
}
