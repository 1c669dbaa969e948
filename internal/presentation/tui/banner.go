package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the algoscope banner with a gradient in the given profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text, color string
	}{
		{`        _                                       `, "#818cf8"},
		{`   __ _| | __ _  ___  ___  ___ ___  _ __   ___ `, "#a78bfa"},
		{`  / _' | |/ _' |/ _ \/ __|/ __/ _ \| '_ \ / _ \`, "#c084fc"},
		{` | (_| | | (_| | (_) \__ \ (_| (_) | |_) |  __/`, "#e879f9"},
		{`  \__,_|_|\__, |\___/|___/\___\___/| .__/ \___|`, "#f472b6"},
		{`          |___/                    |_|         `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
