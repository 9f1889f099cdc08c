package service

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/engine"
	"propcalc/observability"
)

var tracer = otel.Tracer("service")

// CalculatorService exposes the engine to transports, adding bounds
// checks, tracing, metrics and logging. The results are the engine's,
// unchanged.
type CalculatorService struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewCalculatorService(metrics *observability.Metrics, logger *zap.Logger) *CalculatorService {
	return &CalculatorService{metrics: metrics, logger: logger}
}

// DebtService prices a mortgage. convention is "simple" or "semi-annual"
// (the default).
func (s *CalculatorService) DebtService(
	ctx context.Context,
	in domain.MortgageInputs,
	convention string,
) (domain.DebtServiceResult, error) {
	_, span := tracer.Start(ctx, "CalculatorService.DebtService")
	defer span.End()

	if err := validateMortgage(in); err != nil {
		return domain.DebtServiceResult{}, err
	}

	conv := engine.ConventionByName(convention)
	span.SetAttributes(
		attribute.String("mortgage.frequency", string(in.PaymentFrequency)),
		attribute.String("mortgage.convention", conv.Name()),
	)

	start := time.Now()
	res := engine.ComputeDebtServiceWith(in, conv)
	s.observe("debt_service", start)

	s.logger.Debug("debt service computed",
		zap.String("convention", conv.Name()),
		zap.Float64("periodic_payment", res.PeriodicPayment),
		zap.Float64("balance_at_term_end", res.BalanceAtTermEnd),
	)
	return res, nil
}

// Schedule returns the per-payment amortization rows over the term.
func (s *CalculatorService) Schedule(
	ctx context.Context,
	in domain.MortgageInputs,
	convention string,
) ([]domain.AmortizationPeriod, error) {
	_, span := tracer.Start(ctx, "CalculatorService.Schedule")
	defer span.End()

	if err := validateMortgage(in); err != nil {
		return nil, err
	}

	start := time.Now()
	rows := engine.AmortizationSchedule(in, engine.ConventionByName(convention))
	s.observe("schedule", start)

	span.SetAttributes(attribute.Int("schedule.rows", len(rows)))
	return rows, nil
}

func (s *CalculatorService) CurrentMetrics(
	ctx context.Context,
	in domain.CurrentPropertyInputs,
) (domain.PropertyMetrics, error) {
	_, span := tracer.Start(ctx, "CalculatorService.CurrentMetrics")
	defer span.End()

	start := time.Now()
	m := engine.ComputeCurrentMetrics(in)
	s.observe("current_metrics", start)
	return m, nil
}

func (s *CalculatorService) CandidateMetrics(
	ctx context.Context,
	in domain.NewPropertyInputs,
) (domain.PropertyMetrics, error) {
	_, span := tracer.Start(ctx, "CalculatorService.CandidateMetrics")
	defer span.End()

	if err := validateCandidate(in); err != nil {
		return domain.PropertyMetrics{}, err
	}

	start := time.Now()
	m := engine.ComputeCandidateMetrics(in)
	s.observe("candidate_metrics", start)
	return m, nil
}

func (s *CalculatorService) Compare(
	ctx context.Context,
	current domain.CurrentPropertyInputs,
	candidate domain.NewPropertyInputs,
) (domain.ComparisonMetrics, error) {
	_, span := tracer.Start(ctx, "CalculatorService.Compare")
	defer span.End()

	if err := validateCandidate(candidate); err != nil {
		return domain.ComparisonMetrics{}, err
	}

	start := time.Now()
	c := engine.ComputeComparison(current, candidate)
	s.observe("comparison", start)

	s.logger.Debug("comparison computed",
		zap.Float64("net_sale_proceeds", c.NetSaleProceeds),
		zap.Float64("monthly_cash_flow_delta", c.MonthlyCashFlowDelta),
	)
	return c, nil
}

// Screen evaluates the candidate against investment-quality thresholds.
func (s *CalculatorService) Screen(
	ctx context.Context,
	candidate domain.NewPropertyInputs,
	thresholds domain.ScreeningThresholds,
) (domain.ScreeningResult, error) {
	_, span := tracer.Start(ctx, "CalculatorService.Screen")
	defer span.End()

	if err := validateCandidate(candidate); err != nil {
		return domain.ScreeningResult{}, err
	}

	start := time.Now()
	res := engine.ScreenCandidate(engine.ComputeCandidateMetrics(candidate), thresholds)
	s.observe("screening", start)

	span.SetAttributes(attribute.Bool("screening.passes", res.Passes))
	return res, nil
}

// Decide runs the keep-vs-sell simulation.
func (s *CalculatorService) Decide(
	ctx context.Context,
	in domain.DecisionInputs,
) (domain.DecisionResult, error) {
	_, span := tracer.Start(ctx, "CalculatorService.Decide")
	defer span.End()

	if err := validateDecision(in); err != nil {
		return domain.DecisionResult{}, err
	}

	start := time.Now()
	res := engine.ComputeDecision(in)
	s.observe("decision", start)
	s.metrics.IncrDecision(string(res.Decision))

	span.SetAttributes(
		attribute.String("decision.outcome", string(res.Decision)),
		attribute.Int("decision.years", len(res.Series)),
	)
	s.logger.Debug("decision computed",
		zap.String("decision", string(res.Decision)),
		zap.Int("planning_age", res.PlanningAge),
		zap.Float64("current_at_planning", res.CurrentAtPlanning),
		zap.Float64("new_at_planning", res.NewAtPlanning),
	)
	return res, nil
}

func (s *CalculatorService) observe(operation string, start time.Time) {
	s.metrics.RecordCalculation(operation, time.Since(start))
}

func validateMortgage(in domain.MortgageInputs) error {
	if exceeds(in.AmortizationYears, MaxAmortizationYears) {
		return &domain.ErrValidation{Field: "amortizationYears", Message: "must be at most 50 years"}
	}
	if exceeds(in.TermYears, MaxTermYears) {
		return &domain.ErrValidation{Field: "termYears", Message: "must be at most 50 years"}
	}
	return nil
}

func validateCandidate(in domain.NewPropertyInputs) error {
	if exceeds(in.AmortizationYears, MaxAmortizationYears) {
		return &domain.ErrValidation{Field: "amortizationYears", Message: "must be at most 50 years"}
	}
	return nil
}

func validateDecision(in domain.DecisionInputs) error {
	if exceeds(in.AmortizationYears, MaxAmortizationYears) {
		return &domain.ErrValidation{Field: "amortizationYears", Message: "must be at most 50 years"}
	}
	if in.PlanningAge > in.ClientAge && uint(in.PlanningAge)-uint(in.ClientAge) > MaxPlanningYears {
		return &domain.ErrValidation{Field: "planningAge", Message: "must be within 120 years of clientAge"}
	}
	return nil
}

// exceeds is false for non-finite values, which the engine treats as 0.
func exceeds(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > limit
}
