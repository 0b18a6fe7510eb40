package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caioaot/atelier-backend/internal/infra/http/middleware"
	"github.com/caioaot/atelier-backend/internal/usecase"
)

type ContactHandler struct {
	UseCase *usecase.SubmitContactUseCase
	Log     *slog.Logger
}

func NewContactHandler(uc *usecase.SubmitContactUseCase, log *slog.Logger) *ContactHandler {
	return &ContactHandler{UseCase: uc, Log: log}
}

type SubmitContactRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
	Company        string `json:"company" validate:"omitempty,max=255"`
	Subject        string `json:"subject" validate:"required,max=255"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	Type           string `json:"type" validate:"omitempty,oneof=general project partnership support"`
	RecaptchaToken string `json:"recaptcha_token" validate:"omitempty"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	out, err := h.UseCase.Execute(r.Context(), usecase.SubmitContactInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Subject:        req.Subject,
		Message:        req.Message,
		Type:           req.Type,
		RecaptchaToken: req.RecaptchaToken,
		IPAddress:      clientIP(r),
		UserAgent:      r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrRecaptchaFailed) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "The given data was invalid.",
				"errors":  map[string]string{"recaptcha_token": "reCAPTCHA verification failed."},
			})
			return
		}
		h.Log.Error("submit contact", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	middleware.RecordContactSubmission(out.Priority)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Thank you for your message. We will get back to you soon.",
		"data":    out,
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}
