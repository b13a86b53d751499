package execution

import (
	"context"
	"errors"
	"net"
	"time"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/core/services/quota"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ IExecutionService = (*ExecutionService)(nil)

const (
	defaultLanguage = "python3"
	versionIndex    = "0"
)

var languages = map[string]string{
	"Python":     "python3",
	"JavaScript": "nodejs",
	"Java":       "java",
	"C":          "c",
	"C++":        "cpp",
}

// ProviderLanguage maps a display language to the executor's identifier
func ProviderLanguage(language string) string {
	if l, ok := languages[language]; ok {
		return l
	}
	return defaultLanguage
}

type ExecutionService struct {
	executor secondary.CodeExecutor
	quota    quota.IQuotaService
	timeout  time.Duration
	logger   primary.Logger
}

func NewExecutionService(
	executor secondary.CodeExecutor,
	quotaService quota.IQuotaService,
	timeout time.Duration,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		executor: executor,
		quota:    quotaService,
		timeout:  timeout,
		logger:   logger,
	}
}

// Execute consumes exactly one quota unit once the credential gate is passed,
// whatever the outcome of the remote call.
func (s *ExecutionService) Execute(ctx context.Context, code, language, testInput string) domain.ExecutionOutcome {
	if !s.executor.Configured() {
		s.logger.Warn("JDoodle credentials not configured", "error", errs.ExecutorNotConfigured)
		return domain.ExecutionOutcome{Output: errs.MsgJDoodleNoCredentials}
	}

	if !s.quota.TryConsume(ctx) {
		s.logger.Warn("JDoodle execution skipped", "language", language, "error", errs.QuotaExhausted)
		return domain.ExecutionOutcome{Output: errs.MsgJDoodleQuotaReached, QuotaExhausted: true}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Info("Executing on JDoodle", "language", language)
	resp, err := s.executor.Execute(callCtx, &domain.ExecutionRequest{
		Script:       code,
		Language:     ProviderLanguage(language),
		VersionIndex: versionIndex,
		Stdin:        testInput,
	})
	if err != nil {
		if isTimeout(err) {
			s.logger.Error("JDoodle execution timed out", "timeout", s.timeout)
			return domain.ExecutionOutcome{Output: errs.MsgJDoodleTimeout, Attempted: true}
		}
		s.logger.Error("JDoodle request failed", "error", err)
		return domain.ExecutionOutcome{Output: errs.MsgJDoodleUnreachable(err), Attempted: true}
	}

	switch {
	case resp.Output != "":
		return domain.ExecutionOutcome{Output: resp.Output, Attempted: true}
	case resp.Error != "":
		s.logger.Error("JDoodle execution error", "error", resp.Error)
		return domain.ExecutionOutcome{Output: resp.Error, Attempted: true}
	default:
		s.logger.Error("JDoodle returned an empty response", "status", resp.StatusCode)
		return domain.ExecutionOutcome{Output: errs.MsgJDoodleBadResponse, Attempted: true}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
