package terminal

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Color modes accepted by Detect.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const fallbackWidth = 80

// Info is what the renderer needs to know about its output.
type Info struct {
	Interactive bool // styling enabled
	TTY         bool // output is a terminal
	Width       int  // columns
}

// Detect inspects f. A positive width overrides the measured one.
func Detect(f *os.File, colorMode string, width int) (Info, error) {
	tty := f != nil && term.IsTerminal(int(f.Fd()))

	var info Info
	info.TTY = tty
	switch colorMode {
	case ColorAuto, "":
		info.Interactive = tty && os.Getenv("NO_COLOR") == ""
	case ColorAlways:
		info.Interactive = true
	case ColorNever:
		info.Interactive = false
	default:
		return Info{}, fmt.Errorf("unknown color mode %q", colorMode)
	}

	info.Width = width
	if info.Width <= 0 {
		info.Width = measure(f, tty)
	}
	return info, nil
}

func measure(f *os.File, tty bool) int {
	if tty {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return fallbackWidth
}
