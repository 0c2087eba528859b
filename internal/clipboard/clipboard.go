// Package clipboard writes to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System writes to the operating system clipboard.
type System struct {
	write func(string) error
}

// New returns a System clipboard, or ErrUnsupported when no backend exists
// (for example a headless Linux box without xclip, xsel or wl-copy).
func New() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	return &System{write: clipboard.WriteAll}, nil
}

// WriteText copies text to the clipboard.
func (s *System) WriteText(text string) error {
	if err := s.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
