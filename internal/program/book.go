package program

import "slices"

// DefaultBook is the book a fresh program starts with.
const DefaultBook = "Atomic Habits"

var books = []string{
	"Atomic Habits",
	"Ikigai",
	"The Art of Being Alone",
	"The Psychology of Money",
	"Rich Dad Poor Dad",
	"Ego is the Enemy",
	"Zero to One",
}

// Books returns the reading list in order.
func Books() []string {
	return slices.Clone(books)
}

// IsBook reports whether title is on the reading list.
func IsBook(title string) bool {
	return slices.Contains(books, title)
}

// NextBook returns the title after current, wrapping around. An unknown
// title yields the first book.
func NextBook(current string) string {
	i := slices.Index(books, current)
	return books[(i+1)%len(books)]
}
