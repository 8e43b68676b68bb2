package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diabros/apiserver/internal/events"
	"github.com/diabros/apiserver/internal/services"
	"github.com/diabros/apiserver/internal/store"
	"github.com/diabros/apiserver/types"
	"github.com/go-chi/chi/v5"
)

const adminRole = "admin"

// AdminHandler provides the admin-only write endpoints.
type AdminHandler struct {
	bookService   *services.BookService
	personService *services.PersonService
	recService    *services.RecommendationService
	userService   *services.UserService
	mediaService  *services.MediaService
	publisher     *events.Publisher
}

// NewAdminHandler constructs a handler with the provided dependencies.
// mediaService may be nil when no object storage is configured;
// publisher may be nil when no broker is configured.
func NewAdminHandler(
	bookService *services.BookService,
	personService *services.PersonService,
	recService *services.RecommendationService,
	userService *services.UserService,
	mediaService *services.MediaService,
	publisher *events.Publisher,
) *AdminHandler {
	return &AdminHandler{
		bookService:   bookService,
		personService: personService,
		recService:    recService,
		userService:   userService,
		mediaService:  mediaService,
		publisher:     publisher,
	}
}

// AdminRouter registers admin routes on the given router. Every route
// requires a valid token whose subject resolves to an admin user.
func AdminRouter(r chi.Router, handler *AdminHandler, authMiddleware func(http.Handler) http.Handler) {
	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Use(handler.requireAdmin)

	r.Post("/books", handler.CreateBook)
	r.Post("/people", handler.CreatePerson)
	r.Post("/recommendations", handler.CreateRecommendation)
	r.Get("/recommendations", handler.ListRecommendations)
	if handler.mediaService != nil {
		r.Post("/media", handler.UploadMedia)
	}
}

// CreateBookRequest mirrors the admin add-book form.
type CreateBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	CoverImageURL string `json:"coverImageUrl"`
	Version       string `json:"version"`
	TokopediaURL  string `json:"tokopediaUrl"`
	OpenLibraryID string `json:"openlibraryId"`
}

// CreatePersonRequest mirrors the admin add-person form.
type CreatePersonRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

// CreateRecommendationRequest links a person to a book.
type CreateRecommendationRequest struct {
	PersonID int `json:"person_id"`
	BookID   int `json:"book_id"`
}

type CreateBookResponse struct {
	Message string     `json:"message"`
	Book    types.Book `json:"book"`
}

type CreatePersonResponse struct {
	Message string       `json:"message"`
	Person  types.Person `json:"person"`
}

type CreateRecommendationResponse struct {
	Message        string               `json:"message"`
	Recommendation types.Recommendation `json:"recommendation"`
}

// RecommendationListResponse is the admin overview payload.
type RecommendationListResponse struct {
	Recommendations []types.RecommendationDetail `json:"recommendations"`
}

func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if req.Title == "" || req.Author == "" {
		writeError(w, http.StatusBadRequest, "title and author are required")
		return
	}

	req.Version = strings.TrimSpace(req.Version)
	if req.Version != "" && !types.ValidVersion(req.Version) {
		writeError(w, http.StatusBadRequest, "invalid version")
		return
	}

	book, err := h.bookService.Create(r.Context(), types.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   strings.TrimSpace(req.Description),
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
		Version:       req.Version,
		TokopediaURL:  strings.TrimSpace(req.TokopediaURL),
		OpenLibraryID: strings.TrimSpace(req.OpenLibraryID),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create book")
		return
	}

	h.publisher.BookCreated(r.Context(), book)
	writeJSON(w, http.StatusCreated, CreateBookResponse{Message: "book added", Book: book})
}

func (h *AdminHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	person, err := h.personService.Create(r.Context(), types.Person{
		Name:      req.Name,
		Bio:       strings.TrimSpace(req.Bio),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create person")
		return
	}

	h.publisher.PersonCreated(r.Context(), person)
	writeJSON(w, http.StatusCreated, CreatePersonResponse{Message: "person added", Person: person})
}

func (h *AdminHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req CreateRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.PersonID < 1 || req.BookID < 1 {
		writeError(w, http.StatusBadRequest, "person_id and book_id are required")
		return
	}

	rec, err := h.recService.Create(r.Context(), types.Recommendation{
		PersonID: req.PersonID,
		BookID:   req.BookID,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "recommendation already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create recommendation")
		return
	}

	h.publisher.RecommendationCreated(r.Context(), rec)
	writeJSON(w, http.StatusCreated, CreateRecommendationResponse{
		Message:        "recommendation added",
		Recommendation: rec,
	})
}

func (h *AdminHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	details, err := h.recService.ListDetailed(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recommendations")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationListResponse{Recommendations: details})
}

func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := h.userService.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load user")
			return
		}

		if !strings.EqualFold(user.Role, adminRole) {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
