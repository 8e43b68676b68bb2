package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diabros/apiserver/internal/catalog"
	"github.com/diabros/apiserver/internal/services"
	"github.com/diabros/apiserver/internal/store"
	"github.com/diabros/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// BookHandler provides the public browsing endpoints for books.
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler constructs a handler with the provided service.
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BooksRouter registers public book routes on the given router.
func BooksRouter(r chi.Router, bookService *services.BookService) {
	handler := NewBookHandler(bookService)

	r.Get("/", handler.ListBooks)
	r.Get("/{bookID}", handler.GetBook)
}

// BookListResponse is the catalog listing payload.
type BookListResponse struct {
	Books []types.Book `json:"books"`
}

// BookDetailResponse is a book plus the people who recommend it.
type BookDetailResponse struct {
	Book   types.Book     `json:"book"`
	People []types.Person `json:"people"`
}

// ListBooks returns the full catalog, optionally narrowed by the q
// (title/author substring) and version query parameters.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	version := strings.TrimSpace(r.URL.Query().Get("version"))
	if version != "" && version != catalog.VersionAll && !types.ValidVersion(version) {
		writeError(w, http.StatusBadRequest, "invalid version filter")
		return
	}

	books, err := h.bookService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}

	writeJSON(w, http.StatusOK, BookListResponse{Books: catalog.Filter(books, query, version)})
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "bookID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, people, err := h.bookService.GetWithRecommenders(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch book")
		return
	}

	writeJSON(w, http.StatusOK, BookDetailResponse{Book: book, People: people})
}
