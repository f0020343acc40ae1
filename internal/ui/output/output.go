// Package output creates termenv outputs that honour NO_COLOR.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Detected returns the terminal's own color profile, or Ascii when NO_COLOR
// is set.
func Detected() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ANSI returns the basic 16-color profile, or Ascii when NO_COLOR is set.
// Replays written to files or CI logs use it so their output is stable.
func ANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New creates an output for w with the detected profile. A nil w writes to
// stderr.
func New(w io.Writer) *termenv.Output {
	return NewWithProfile(w, Detected)
}

// NewWithProfile creates an output for w whose profile is chosen by
// profileFn.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}
