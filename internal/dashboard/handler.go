package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Handler exposes the dashboard feed endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.feed)
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	items, err := h.service.Feed(r.Context(), actor)
	if err != nil {
		h.logger.Error("load dashboard feed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
