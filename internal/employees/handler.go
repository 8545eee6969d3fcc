package employees

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// Handler exposes roster endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers roster routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/insert", h.create)
	r.Put("/", h.edit)
	r.Put("/delete", h.softDelete)
	r.Put("/restore", h.restore)
	r.Delete("/delete-permanent", h.permanentDelete)
	r.Get("/trash", h.trash)
}

type idRequest struct {
	ID int64 `json:"id" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	roster, err := h.service.List(r.Context(), actor)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, roster)
}

func (h *Handler) trash(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	roster, err := h.service.ListTrash(r.Context(), actor)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, roster)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "id must be numeric")
		return
	}
	e, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "name and position are required")
		return
	}
	id, err := h.service.Create(r.Context(), actor, in)
	if err != nil {
		h.logger.Error("create employee", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusCreated, "Employee created", map[string]any{"id": id})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	var in EditInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "id, name and position are required")
		return
	}
	if err := h.service.Edit(r.Context(), actor, in); err != nil {
		h.logger.Error("edit employee", slog.Int64("id", in.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Employee updated", nil)
}

func (h *Handler) softDelete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.service.SoftDelete, "Employee moved to trash")
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.service.Restore, "Employee restored")
}

func (h *Handler) permanentDelete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.service.PermanentDelete, "Employee permanently deleted")
}

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, op func(context.Context, shared.Identity, int64) error, message string) {
	actor, ok := httpx.Caller(w, r)
	if !ok {
		return
	}
	var in idRequest
	if err := httpx.DecodeJSON(r, &in); err != nil || in.ID == 0 {
		httpx.Error(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := op(r.Context(), actor, in.ID); err != nil {
		h.logger.Error("employee lifecycle change", slog.Int64("id", in.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, message, nil)
}
