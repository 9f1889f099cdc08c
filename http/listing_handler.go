package http

import (
	"net/http"

	"go.uber.org/zap"

	"propcalc/service"
)

type ListingHandler struct {
	extractor *service.ListingExtractor
	logger    *zap.Logger
}

func NewListingHandler(extractor *service.ListingExtractor, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{extractor: extractor, logger: logger}
}

// Extract takes the listing page markup as the raw request body.
func (h *ListingHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /listings/extract")
	defer span.End()

	extraction, err := h.extractor.Extract(ctx, r.Body)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, extraction)
}
