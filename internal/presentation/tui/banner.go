package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the explorer banner, coloured when w is a colour-capable terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ___      _   _                        ", "#34d399"},
		{" | _ \\__ _| |_| |_ __ __ ____ _ _  _ ___", "#2dd4bf"},
		{" |  _/ _` |  _| ' \\\\ V  V / _` | || (_-<", "#22d3ee"},
		{" |_| \\__,_|\\__|_||_\\_/\\_/\\__,_|\\_, /__/", "#38bdf8"},
		{"                               |__/     ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  career pathway explorer "+version).Faint())
	fmt.Fprintln(w)
}

// Active renders s in the active-path colour.
func Active(w io.Writer, s string) string {
	out := termenv.NewOutput(w)
	return out.String(s).Foreground(out.Color("#fbbf24")).Bold().String()
}
