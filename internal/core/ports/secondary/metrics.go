package secondary

import (
	"time"

	"gitlab.com/algotutor.net/internal/domain"
)

type MetricsRecorder interface {
	ObserveSolve(category domain.Category, stage domain.SolveStage)
	ObserveQuota(decision domain.QuotaDecision)
	ObserveProviderCall(provider string, elapsed time.Duration, err error)
}
