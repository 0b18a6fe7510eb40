package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/caioaot/atelier-backend/internal/infra/http/middleware"
	"github.com/caioaot/atelier-backend/internal/infra/integration/msgraph"
)

const availabilityWindowDays = 30

// BookingGateway is what msgraph.Client provides.
type BookingGateway interface {
	GetAvailability(ctx context.Context, startDate, endDate, serviceID string) (json.RawMessage, error)
	CreateAppointment(ctx context.Context, input msgraph.AppointmentInput) (*msgraph.Appointment, error)
}

type BookingHandler struct {
	Gateway BookingGateway
	Log     *slog.Logger
}

func NewBookingHandler(gateway BookingGateway, log *slog.Logger) *BookingHandler {
	return &BookingHandler{Gateway: gateway, Log: log}
}

type ScheduleRequest struct {
	ServiceID     string `json:"service_id" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=50"`
	Notes         string `json:"notes" validate:"omitempty,max=1000"`
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	startDate := q.Get("start_date")
	if startDate == "" {
		startDate = time.Now().UTC().Format("2006-01-02")
	}
	endDate := q.Get("end_date")
	if endDate == "" {
		endDate = time.Now().UTC().AddDate(0, 0, availabilityWindowDays).Format("2006-01-02")
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "The given data was invalid.",
				"errors":  map[string]string{"start_date": "Dates must use the YYYY-MM-DD format."},
			})
			return
		}
	}

	availability, err := h.Gateway.GetAvailability(r.Context(), startDate, endDate, q.Get("service_id"))
	if err != nil {
		respondUpstreamError(w, h.Log, "fetch availability", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": availability,
		"meta": map[string]string{"start_date": startDate, "end_date": endDate},
	})
}

func (h *BookingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string]string{"start_time": "Must be a valid RFC3339 timestamp."},
		})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string]string{"end_time": "Must be a valid RFC3339 timestamp."},
		})
		return
	}
	if !end.After(start) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string]string{"end_time": "Must be after start_time."},
		})
		return
	}

	appointment, err := h.Gateway.CreateAppointment(r.Context(), msgraph.AppointmentInput{
		ServiceID:     req.ServiceID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		respondUpstreamError(w, h.Log, "create appointment", err)
		return
	}

	middleware.RecordBookingCreated()

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Your appointment has been booked.",
		"data": map[string]string{
			"booking_id": appointment.ID,
			"status":     "confirmed",
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		},
	})
}
