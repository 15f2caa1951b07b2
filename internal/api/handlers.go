package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dreamware/bookshelf/internal/storage"
)

// bookInput is the request body of create and replace. Values of any JSON
// type are kept as sent; missing fields stay empty strings.
type bookInput struct {
	Name   any `json:"name"`
	Author any `json:"author"`
}

func newBookInput() bookInput {
	return bookInput{Name: "", Author: ""}
}

// handleList returns the collection, optionally narrowed to authors containing ?author=
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")

	var books []storage.Book
	if author == "" {
		books = s.store.All()
	} else {
		books = s.store.Filter(func(b storage.Book) bool {
			text, ok := b.AuthorText()
			return ok && strings.Contains(text, author)
		})
	}
	writeJSON(w, http.StatusOK, books)
}

// handleCreate appends a record with a freshly generated id
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in := newBookInput()
	if !s.decode(w, r, &in) {
		return
	}

	book := storage.Book{ID: s.newID(), Name: in.Name, Author: in.Author}
	s.store.Append(book)
	writeJSON(w, http.StatusOK, book)
}

// handleReplace rewrites name and author of an existing record, keeping its id and position
func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	in := newBookInput()
	if !s.decode(w, r, &in) {
		return
	}

	book := storage.Book{ID: r.PathValue("id"), Name: in.Name, Author: in.Author}
	if err := s.store.Replace(book); err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// handleDelete removes a record
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Remove(r.PathValue("id")); err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth reports liveness and collection size
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Books:   stats.Books,
		Authors: stats.Authors,
	})
}

// handleNotFound answers requests that match no route
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

type healthResponse struct {
	Status  string `json:"status"`
	Books   int    `json:"books"`
	Authors int    `json:"authors"`
}

// decode reads the request body into v, answering the client itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := decodeJSON(w, r, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		s.logger.Debug("rejecting request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, errMalformedBody.Error())
	}
	return false
}

// storeError maps store errors to responses. Unknown ids answer 400, not 404.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrBookNotFound) {
		writeError(w, http.StatusBadRequest, msgBookNotFound)
		return
	}
	s.logger.Error("store operation failed", "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
