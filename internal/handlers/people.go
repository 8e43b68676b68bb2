package handlers

import (
	"errors"
	"net/http"

	"github.com/diabros/apiserver/internal/services"
	"github.com/diabros/apiserver/internal/store"
	"github.com/diabros/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// PersonHandler provides the public browsing endpoints for people.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler constructs a handler with the provided service.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// PeopleRouter registers public person routes on the given router.
func PeopleRouter(r chi.Router, personService *services.PersonService) {
	handler := NewPersonHandler(personService)

	r.Get("/", handler.ListPeople)
	r.Get("/{personID}", handler.GetPerson)
}

// PersonListResponse is the people listing payload.
type PersonListResponse struct {
	People []types.Person `json:"people"`
}

// PersonDetailResponse is a person plus the books they recommend.
type PersonDetailResponse struct {
	Person types.Person `json:"person"`
	Books  []types.Book `json:"books"`
}

func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.personService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list people")
		return
	}

	writeJSON(w, http.StatusOK, PersonListResponse{People: people})
}

func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "personID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}

	person, books, err := h.personService.GetWithBooks(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch person")
		return
	}

	writeJSON(w, http.StatusOK, PersonDetailResponse{Person: person, Books: books})
}
