package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/caioaot/atelier-backend/internal/entity"
)

const (
	testimonialsDefaultPerPage = 10
	testimonialsMaxPerPage     = 50

	featuredDefaultLimit = 6
	featuredMaxLimit     = 20
	featuredMinRating    = 4
)

type TestimonialHandler struct {
	Repo entity.TestimonialRepositoryInterface
	Log  *slog.Logger
}

func NewTestimonialHandler(repo entity.TestimonialRepositoryInterface, log *slog.Logger) *TestimonialHandler {
	return &TestimonialHandler{Repo: repo, Log: log}
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r, testimonialsDefaultPerPage, testimonialsMaxPerPage)
	minRating, _ := strconv.Atoi(r.URL.Query().Get("min_rating"))

	filter := entity.TestimonialFilter{
		ProjectID:    r.URL.Query().Get("project_id"),
		MinRating:    minRating,
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Page:         page,
		PerPage:      perPage,
	}

	testimonials, total, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		h.Log.Error("list testimonials", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	meta := newListMeta(page, perPage, total)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  testimonials,
		"meta":  meta,
		"links": newListLinks(r, meta),
	})
}

func (h *TestimonialHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = featuredDefaultLimit
	}
	if limit > featuredMaxLimit {
		limit = featuredMaxLimit
	}

	testimonials, err := h.Repo.Featured(r.Context(), featuredMinRating, limit)
	if err != nil {
		h.Log.Error("featured testimonials", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": testimonials,
		"meta": map[string]int{"count": len(testimonials)},
	})
}
