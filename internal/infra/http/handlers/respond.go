package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/caioaot/atelier-backend/internal/infra/http/middleware"
	"github.com/caioaot/atelier-backend/internal/infra/integration/upstream"
)

var validate = newValidator()

// newValidator reports field names by their json tag so validation errors
// match what the client actually sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func respondValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = validationMessage(fe)
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "max":
		return fmt.Sprintf("Must not be longer than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return "Must be a valid date."
	default:
		return "Invalid value."
	}
}

// decodeAndValidate binds the JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may
// proceed.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondValidationErrors(w, verrs)
		} else {
			respondError(w, http.StatusBadRequest, "Invalid request.")
		}
		return false
	}
	return true
}

// respondUpstreamError hides integration detail from the client: every
// gateway failure reads as a temporary outage, anything else as a server
// error. The real cause is logged.
func respondUpstreamError(w http.ResponseWriter, log *slog.Logger, action string, err error) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		log.Error(action+" failed", "integration", ue.Integration, "kind", ue.Kind.String(), "error", err)
		middleware.RecordIntegrationError(ue.Integration)
		respondError(w, http.StatusServiceUnavailable,
			"Service temporarily unavailable. Please try again later.")
		return
	}
	log.Error(action+" failed", "error", err)
	respondError(w, http.StatusInternalServerError, "Internal server error.")
}

type listMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

type listLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

func newListMeta(page, perPage, total int) listMeta {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return listMeta{CurrentPage: page, PerPage: perPage, Total: total, LastPage: lastPage}
}

func newListLinks(r *http.Request, meta listMeta) listLinks {
	pageURL := func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		return r.URL.Path + "?" + q.Encode()
	}

	links := listLinks{
		First: pageURL(1),
		Last:  pageURL(meta.LastPage),
	}
	if meta.CurrentPage > 1 {
		prev := pageURL(meta.CurrentPage - 1)
		links.Prev = &prev
	}
	if meta.CurrentPage < meta.LastPage {
		next := pageURL(meta.CurrentPage + 1)
		links.Next = &next
	}
	return links
}

// pagination reads page/per_page query params with clamping.
func pagination(r *http.Request, defaultPerPage, maxPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
