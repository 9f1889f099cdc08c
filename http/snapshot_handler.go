package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/service"
)

type SnapshotHandler struct {
	service *service.SnapshotService
	logger  *zap.Logger
}

func NewSnapshotHandler(service *service.SnapshotService, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{service: service, logger: logger}
}

// Save answers 202 with the snapshot id; the write itself may have failed.
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /snapshots")
	defer span.End()

	var input domain.InputSnapshot
	if !decodeBody(w, r, &input) {
		return
	}

	id := h.service.Save(ctx, input)
	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (h *SnapshotHandler) Load(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GET /snapshots/{id}")
	defer span.End()

	id := chi.URLParam(r, "id")
	snapshot, ok, err := h.service.Load(ctx, id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	if !ok {
		handleServiceError(w, &domain.ErrNotFound{Resource: "snapshot", ID: id}, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
