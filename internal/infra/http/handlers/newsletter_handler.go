package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/http/middleware"
	"github.com/caioaot/atelier-backend/internal/usecase"
)

type NewsletterHandler struct {
	Subscribe   *usecase.SubscribeNewsletterUseCase
	Unsubscribe *usecase.UnsubscribeNewsletterUseCase
	Log         *slog.Logger
}

func NewNewsletterHandler(
	subscribe *usecase.SubscribeNewsletterUseCase,
	unsubscribe *usecase.UnsubscribeNewsletterUseCase,
	log *slog.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{Subscribe: subscribe, Unsubscribe: unsubscribe, Log: log}
}

type SubscribeRequest struct {
	Email       string            `json:"email" validate:"required,email,max=255"`
	Name        string            `json:"name" validate:"omitempty,max=255"`
	Source      string            `json:"source" validate:"omitempty,max=100"`
	Preferences map[string]string `json:"preferences"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"omitempty"`
}

func (h *NewsletterHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	out, err := h.Subscribe.Execute(r.Context(), usecase.SubscribeInput{
		Email:       req.Email,
		Name:        req.Name,
		Source:      req.Source,
		Preferences: req.Preferences,
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		h.Log.Error("newsletter subscribe", "email", req.Email, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	middleware.RecordNewsletterOutcome(out.Status)

	status := http.StatusOK
	message := "You are already subscribed to our newsletter."
	switch out.Status {
	case usecase.StatusPendingVerification:
		status = http.StatusCreated
		message = "Thank you for subscribing! Please check your inbox."
	case usecase.StatusResubscribed:
		message = "Welcome back! Your subscription has been reactivated."
	}

	writeJSON(w, status, map[string]any{"message": message, "data": out})
}

func (h *NewsletterHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	out, err := h.Unsubscribe.Execute(r.Context(), usecase.UnsubscribeInput{
		Email: req.Email,
		Token: req.Token,
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Email address not found.")
			return
		}
		h.Log.Error("newsletter unsubscribe", "email", req.Email, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	middleware.RecordNewsletterOutcome(out.Status)

	message := "You have been unsubscribed from our newsletter."
	if out.Status == usecase.StatusAlreadyUnsubscribed {
		message = "This email address is already unsubscribed."
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": message, "data": out})
}
