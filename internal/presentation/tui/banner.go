package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the casetree banner with a gradient suited to profile. termenv.Ascii prints it uncoloured.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	lines := []struct{ text, color string }{
		{`   ___ __ _ ___  ___| |_ _ __ ___  ___ `, "#38bdf8"},
		{`  / __/ _' / __|/ _ \ __| '__/ _ \/ _ \`, "#22d3ee"},
		{` | (_| (_| \__ \  __/ |_| | |  __/  __/`, "#2dd4bf"},
		{`  \___\__,_|___/\___|\__|_|  \___|\___|`, "#34d399"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Heading styles a section title.
func Heading(profile termenv.Profile, s string) string {
	return profile.String(s).Bold().Foreground(profile.Color("#38bdf8")).String()
}

// Status colours a check outcome: green when ok, red otherwise.
func Status(profile termenv.Profile, ok bool, s string) string {
	color := "#ef4444"
	if ok {
		color = "#22c55e"
	}
	return profile.String(s).Foreground(profile.Color(color)).String()
}
