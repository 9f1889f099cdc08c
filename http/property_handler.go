package http

import (
	"net/http"

	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/service"
)

type compareRequest struct {
	Current   domain.CurrentPropertyInputs `json:"current"`
	Candidate domain.NewPropertyInputs     `json:"candidate"`
}

type screenRequest struct {
	Candidate  domain.NewPropertyInputs    `json:"candidate"`
	Thresholds *domain.ScreeningThresholds `json:"thresholds,omitempty"`
}

type PropertyHandler struct {
	service    *service.CalculatorService
	thresholds domain.ScreeningThresholds
	logger     *zap.Logger
}

// NewPropertyHandler takes the thresholds applied when a screening request
// carries none.
func NewPropertyHandler(
	service *service.CalculatorService,
	thresholds domain.ScreeningThresholds,
	logger *zap.Logger,
) *PropertyHandler {
	return &PropertyHandler{service: service, thresholds: thresholds, logger: logger}
}

func (h *PropertyHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /properties/current")
	defer span.End()

	var input domain.CurrentPropertyInputs
	if !decodeBody(w, r, &input) {
		return
	}

	metrics, err := h.service.CurrentMetrics(ctx, input)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *PropertyHandler) Candidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /properties/candidate")
	defer span.End()

	var input domain.NewPropertyInputs
	if !decodeBody(w, r, &input) {
		return
	}

	metrics, err := h.service.CandidateMetrics(ctx, input)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *PropertyHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /properties/compare")
	defer span.End()

	var input compareRequest
	if !decodeBody(w, r, &input) {
		return
	}

	comparison, err := h.service.Compare(ctx, input.Current, input.Candidate)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (h *PropertyHandler) Screen(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "POST /properties/screen")
	defer span.End()

	var input screenRequest
	if !decodeBody(w, r, &input) {
		return
	}
	thresholds := h.thresholds
	if input.Thresholds != nil {
		thresholds = *input.Thresholds
	}

	result, err := h.service.Screen(ctx, input.Candidate, thresholds)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
