package http

import (
	"net/http"

	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/service"
)

type MortgageHandler struct {
	service *service.CalculatorService
	logger  *zap.Logger
}

func NewMortgageHandler(service *service.CalculatorService, logger *zap.Logger) *MortgageHandler {
	return &MortgageHandler{service: service, logger: logger}
}

// DebtService prices a mortgage. ?convention=simple switches from the
// default semi-annual compounding.
func (h *MortgageHandler) DebtService(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /mortgage/debt-service")
	defer span.End()

	var input domain.MortgageInputs
	if !decodeBody(w, r, &input) {
		return
	}

	result, err := h.service.DebtService(ctx, input, r.URL.Query().Get("convention"))
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *MortgageHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /mortgage/schedule")
	defer span.End()

	var input domain.MortgageInputs
	if !decodeBody(w, r, &input) {
		return
	}

	rows, err := h.service.Schedule(ctx, input, r.URL.Query().Get("convention"))
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
