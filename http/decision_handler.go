package http

import (
	"net/http"

	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/service"
)

type DecisionHandler struct {
	service *service.CalculatorService
	logger  *zap.Logger
}

func NewDecisionHandler(service *service.CalculatorService, logger *zap.Logger) *DecisionHandler {
	return &DecisionHandler{service: service, logger: logger}
}

func (h *DecisionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /decision")
	defer span.End()

	var input domain.DecisionInputs
	if !decodeBody(w, r, &input) {
		return
	}

	result, err := h.service.Decide(ctx, input)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
