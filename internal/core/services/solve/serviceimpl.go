package solve

import (
	"context"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/core/services/classifier"
	"gitlab.com/algotutor.net/internal/core/services/execution"
	"gitlab.com/algotutor.net/internal/core/services/generation"
	"gitlab.com/algotutor.net/internal/core/services/quota"
	"gitlab.com/algotutor.net/internal/core/services/simulation"
	"gitlab.com/algotutor.net/internal/core/services/template"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ ISolveService = (*SolveService)(nil)

const publishTimeout = 2 * time.Second

type SolveService struct {
	classifier   classifier.IClassifierService
	templates    template.ITemplateService
	generation   generation.IGenerationService
	simulation   simulation.ISimulationService
	execution    execution.IExecutionService
	quota        quota.IQuotaService
	publisher    secondary.EventPublisher
	metrics      secondary.MetricsRecorder
	logger       primary.Logger
	maxDescRunes int
}

type Dependencies struct {
	Classifier classifier.IClassifierService
	Templates  template.ITemplateService
	Generation generation.IGenerationService
	Simulation simulation.ISimulationService
	Execution  execution.IExecutionService
	Quota      quota.IQuotaService
	Publisher  secondary.EventPublisher
	Metrics    secondary.MetricsRecorder
	Logger     primary.Logger
}

func NewSolveService(deps Dependencies, maxDescriptionLength int) *SolveService {
	return &SolveService{
		classifier:   deps.Classifier,
		templates:    deps.Templates,
		generation:   deps.Generation,
		simulation:   deps.Simulation,
		execution:    deps.Execution,
		quota:        deps.Quota,
		publisher:    deps.Publisher,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		maxDescRunes: maxDescriptionLength,
	}
}

func (s *SolveService) Quota(ctx context.Context) (domain.QuotaUsage, error) {
	return s.quota.Usage(ctx)
}

func (s *SolveService) Categories() []domain.Category {
	return s.templates.Categories()
}

func (s *SolveService) Solve(ctx context.Context, req *domain.SolveRequest) (result *domain.SolveResult) {
	start := time.Now()
	result = &domain.SolveResult{
		RequestID: req.RequestID,
		Language:  req.Language,
		Stage:     domain.StageIdle,
	}

	defer s.finish(ctx, req, result, start)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Solve panicked", "request_id", req.RequestID, "panic", r, "stack", string(debug.Stack()))
			result.Stage = domain.StageErrored
			result.ErrorMessage = errs.MsgProcessingFailed(r)
		}
	}()

	s.run(ctx, req, result)
	return result
}

func (s *SolveService) run(ctx context.Context, req *domain.SolveRequest, result *domain.SolveResult) {
	s.advance(result, domain.StageValidating)
	description := strings.TrimSpace(req.Description)
	if description == "" {
		s.logger.Warn("Rejected description", "request_id", req.RequestID, "error", errs.DescriptionRequired)
		s.fail(result, errs.MsgDescriptionRequired)
		return
	}
	if n := utf8.RuneCountInString(description); n > s.maxDescRunes {
		s.logger.Warn("Rejected description", "request_id", req.RequestID, "error", errs.DescriptionTooLong, "length", n, "max", s.maxDescRunes)
		s.fail(result, errs.MsgDescriptionTooLong(s.maxDescRunes))
		return
	}

	s.logger.Info("Handling request", "request_id", req.RequestID, "language", req.Language, "length", utf8.RuneCountInString(description))

	result.Category = s.classifier.Classify(description)
	s.advance(result, domain.StageClassified)

	decoded := s.generation.Generate(ctx, s.templates.Get(result.Category), description, req.Language)
	generated := decoded.Result
	result.Degraded = decoded.Degraded()
	result.Result = generated.Code
	result.Complexity = errs.MsgComplexity(generated.TimeOrNA(), generated.SpaceOrNA())
	result.OptimizationAdvice = strings.TrimSpace(dedent(generated.Explanation))
	result.Lint = errs.MsgLintPlaceholder
	s.advance(result, domain.StageGenerated)

	if strings.TrimSpace(req.TestInput) == "" {
		result.SimulatedOutput = errs.MsgNoTestInput
		result.JDoodleOutput = errs.MsgNoTestInput
		result.QuotaExceeded = s.quotaExhausted(ctx)
		s.advance(result, domain.StageResponded)
		return
	}

	result.SimulatedOutput = s.simulation.Simulate(ctx, result.Result, req.Language, req.TestInput)
	s.advance(result, domain.StageSimulated)

	outcome := s.execution.Execute(ctx, result.Result, req.Language, req.TestInput)
	result.JDoodleOutput = outcome.Output
	result.QuotaExceeded = outcome.QuotaExhausted
	s.advance(result, domain.StageExecuted)

	s.advance(result, domain.StageResponded)
}

// quotaExhausted peeks at today's usage without consuming
func (s *SolveService) quotaExhausted(ctx context.Context) bool {
	usage, err := s.quota.Usage(ctx)
	if err != nil {
		s.logger.Warn("Quota usage unavailable", "error", err)
		return false
	}
	return usage.Exhausted()
}

func (s *SolveService) advance(result *domain.SolveResult, stage domain.SolveStage) {
	s.logger.Debug("Stage reached", "request_id", result.RequestID, "stage", stage)
	result.Stage = stage
}

func (s *SolveService) fail(result *domain.SolveResult, message string) {
	result.Stage = domain.StageErrored
	result.ErrorMessage = message
}

func (s *SolveService) finish(ctx context.Context, req *domain.SolveRequest, result *domain.SolveResult, start time.Time) {
	elapsed := time.Since(start)
	s.metrics.ObserveSolve(result.Category, result.Stage)

	if result.Failed() {
		s.logger.Warn("Request finished with error", "request_id", req.RequestID, "error_message", result.ErrorMessage, "elapsed", elapsed)
	} else {
		s.logger.Info("Request handled", "request_id", req.RequestID, "category", result.Category, "degraded", result.Degraded, "elapsed", elapsed)
	}

	event := &domain.SolveEvent{
		RequestID:     req.RequestID,
		Category:      result.Category,
		Language:      req.Language,
		HasTestInput:  strings.TrimSpace(req.TestInput) != "",
		QuotaExceeded: result.QuotaExceeded,
		Degraded:      result.Degraded,
		Stage:         result.Stage,
		DurationMs:    elapsed.Milliseconds(),
		Timestamp:     start.UTC(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishSolved(pubCtx, event); err != nil {
		s.logger.Warn("Solve event not published", "request_id", req.RequestID, "error", err)
	}
}
