package attendance

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Handler exposes attendance endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers attendance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/mark", h.mark)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	records, err := h.service.ListOn(r.Context(), actor, r.URL.Query().Get("date"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) mark(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	var in MarkInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "employee_id and status are required")
		return
	}
	if err := h.service.Mark(r.Context(), actor, in); err != nil {
		h.logger.Error("mark attendance", slog.Int64("employee_id", in.EmployeeID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Attendance recorded", nil)
}
