package progress

import (
	"errors"
	"fmt"

	"github.com/abhisek/transform90/internal/program"
)

// ErrUnknownBook is returned when switching to a title outside the catalog.
var ErrUnknownBook = errors.New("unknown book")

// SwitchBook makes title the current book. Stored progress of every book is
// kept as is.
func SwitchBook(s State, title string) (State, error) {
	if !program.IsBook(title) {
		return s, fmt.Errorf("%w: %q", ErrUnknownBook, title)
	}
	next := s.Clone()
	next.CurrentBook = title
	if _, ok := next.BookProgress[title]; !ok {
		next.BookProgress[title] = 0
	}
	return next, nil
}
