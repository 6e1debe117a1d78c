package formatter

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is a terminal loading indicator. It satisfies controller.Indicator.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner that writes to w with the given suffix.
func NewSpinner(w io.Writer, suffix string) *Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	return &Spinner{s: s}
}

func (s *Spinner) Show() { s.s.Start() }
func (s *Spinner) Hide() { s.s.Stop() }

// Active reports whether the spinner is currently running.
func (s *Spinner) Active() bool { return s.s.Active() }
