package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the FRASIG ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	// Blue shades matching the web form
	lines := []struct {
		text  string
		color string
	}{
		{"  _____ ____      _    ____ ___ ____ ", "#1a73e8"},
		{" |  ___|  _ \\    / \\  / ___|_ _/ ___|", "#3b82f6"},
		{" | |_  | |_) |  / _ \\ \\___ \\| | |  _ ", "#60a5fa"},
		{" |  _| |  _ <  / ___ \\ ___) | | |_| |", "#93c5fd"},
		{" |_|   |_| \\_\\/_/   \\_\\____/___\\____|", "#bfdbfe"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
