package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caioaot/atelier-backend/internal/entity"
)

const (
	projectsDefaultPerPage = 12
	projectsMaxPerPage     = 50
)

type ProjectHandler struct {
	Repo entity.ProjectRepositoryInterface
	Log  *slog.Logger
}

func NewProjectHandler(repo entity.ProjectRepositoryInterface, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{Repo: repo, Log: log}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	h.respondList(w, r, filter, nil)
}

func (h *ProjectHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	filter.Category = chi.URLParam(r, "category")
	h.respondList(w, r, filter, map[string]any{"category": filter.Category})
}

func (h *ProjectHandler) ListByTechnology(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	filter.Technology = chi.URLParam(r, "technology")
	h.respondList(w, r, filter, map[string]any{"technology": filter.Technology})
}

func (h *ProjectHandler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.Repo.FindBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Error("find project", "slug", slug, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": project})
}

func (h *ProjectHandler) filterFromQuery(r *http.Request) entity.ProjectFilter {
	page, perPage := pagination(r, projectsDefaultPerPage, projectsMaxPerPage)
	return entity.ProjectFilter{
		Category:     r.URL.Query().Get("category"),
		Technology:   r.URL.Query().Get("technology"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Page:         page,
		PerPage:      perPage,
	}
}

func (h *ProjectHandler) respondList(w http.ResponseWriter, r *http.Request, filter entity.ProjectFilter, extra map[string]any) {
	projects, total, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		h.Log.Error("list projects", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	meta := newListMeta(filter.Page, filter.PerPage, total)
	payload := map[string]any{
		"data":  projects,
		"meta":  meta,
		"links": newListLinks(r, meta),
	}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}
