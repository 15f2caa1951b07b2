// Package storage holds the book collection served by the HTTP API.
//
// # Overview
//
// The collection is an ordered sequence of Book records. Order is insertion
// order and is observable through listing: appends go to the end, replacing a
// record keeps its position, and removing a record shifts later records down
// by one.
//
// Name and Author hold the decoded JSON value the client sent. They are
// usually strings; AuthorText reports when the author is not one.
//
// # Core Interface
//
// Store: the operations the handlers need
//   - All() - every record, in order
//   - Filter(keep) - linear scan returning matching records, in order
//   - Append(book) - add to the end
//   - Replace(book) - overwrite the first record with book.ID
//   - Remove(id) - delete the first record with id
//   - Stats() - record and author counts
//
// # Implementations
//
// MemoryStore: slice guarded by sync.RWMutex
//   - No persistence (data lost on restart)
//   - Lookups by id are linear scans (slices.IndexFunc)
//   - Each operation holds the lock for its whole scan-and-mutate step,
//     so a request never observes another request's half-applied change
//
// # Error Handling
//
// ErrBookNotFound: no record carries the requested id
//   - Returned by Replace() and Remove()
//   - Compare with errors.Is
//
// # Usage Examples
//
//	store := storage.NewMemoryStore()
//	store.Append(storage.Book{ID: id, Name: "Dune", Author: "Herbert"})
//
//	err := store.Replace(storage.Book{ID: id, Name: "Dune Messiah", Author: "Herbert"})
//	if errors.Is(err, storage.ErrBookNotFound) {
//	    // respond 400
//	}
//
//	herbert := store.Filter(func(b storage.Book) bool {
//	    author, ok := b.AuthorText()
//	    return ok && strings.Contains(author, "Herb")
//	})
package storage
