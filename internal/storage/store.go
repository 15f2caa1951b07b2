package storage

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// ErrBookNotFound is returned when no record carries the requested id
var ErrBookNotFound = errors.New("book not found")

// Book is a single record in the collection
// Name and Author hold whatever JSON value the client sent, usually a string
type Book struct {
	ID     string `json:"id"`
	Name   any    `json:"name"`
	Author any    `json:"author"`
}

// AuthorText returns Author when it is a string
func (b Book) AuthorText() (string, bool) {
	s, ok := b.Author.(string)
	return s, ok
}

// Store defines the interface for the book collection
// All implementations must be thread-safe for concurrent access
type Store interface {
	// All returns every record in insertion order
	All() []Book

	// Filter returns the records for which keep reports true, in insertion order
	Filter(keep func(Book) bool) []Book

	// Append adds a record to the end of the collection
	Append(book Book)

	// Replace overwrites the first record with book.ID in place
	// Returns ErrBookNotFound if no record has that id
	Replace(book Book) error

	// Remove deletes the first record with the given id
	// Returns ErrBookNotFound if no record has that id
	Remove(id string) error

	// Stats returns collection statistics
	Stats() StoreStats
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Books   int // Number of records
	Authors int // Number of distinct author values
}

// MemoryStore implements Store with an ordered in-memory slice
// Uses sync.RWMutex so every lookup and mutation happens under one lock hold
type MemoryStore struct {
	mu    sync.RWMutex // Protects concurrent access
	books []Book       // Records in insertion order
}

// NewMemoryStore creates a new, empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books: make([]Book, 0),
	}
}

// All returns a copy of the collection so callers can't reorder it
func (m *MemoryStore) All() []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.books)
}

// Filter performs a linear scan and keeps matching records in order
func (m *MemoryStore) Filter(keep func(Book) bool) []Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Book, 0)
	for _, b := range m.books {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}

// Append adds a record at the end
func (m *MemoryStore) Append(book Book) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.books = append(m.books, book)
}

// Replace overwrites the record at the position of the first id match
func (m *MemoryStore) Replace(book Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(book.ID)
	if idx < 0 {
		return ErrBookNotFound
	}
	m.books[idx] = book
	return nil
}

// Remove deletes exactly one record and shifts the rest to close the gap
func (m *MemoryStore) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return ErrBookNotFound
	}
	m.books = slices.Delete(m.books, idx, idx+1)
	return nil
}

// Stats returns collection statistics
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// %#v gives objects and arrays a comparable key
	authors := make(map[string]struct{})
	for _, b := range m.books {
		authors[fmt.Sprintf("%#v", b.Author)] = struct{}{}
	}

	return StoreStats{
		Books:   len(m.books),
		Authors: len(authors),
	}
}

// indexOf must be called with mu held
func (m *MemoryStore) indexOf(id string) int {
	return slices.IndexFunc(m.books, func(b Book) bool { return b.ID == id })
}
