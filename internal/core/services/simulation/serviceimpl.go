package simulation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ ISimulationService = (*SimulationService)(nil)

const (
	systemPrompt = "你是一個程式執行模擬器。"

	userPromptFormat = `你是一個程式助教，請幫我模擬程式執行結果。

程式語言：%s
程式碼：
%s

測試輸入：
%s

請只輸出模擬程式輸出，不要加解釋。
`

	maxTokens   = 500
	temperature = 0.3
)

type SimulationService struct {
	completer secondary.ChatCompleter
	timeout   time.Duration
	logger    primary.Logger
	metrics   secondary.MetricsRecorder
}

func NewSimulationService(
	completer secondary.ChatCompleter,
	timeout time.Duration,
	logger primary.Logger,
	metrics secondary.MetricsRecorder,
) *SimulationService {
	return &SimulationService{
		completer: completer,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

func (s *SimulationService) Simulate(ctx context.Context, code, language, testInput string) string {
	if strings.TrimSpace(testInput) == "" {
		return errs.MsgNoTestInput
	}
	if s.completer == nil {
		s.logger.Error("LLM client not configured", "error", errs.LLMNotConfigured)
		return errs.MsgSimulationNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	out, err := s.completer.Complete(callCtx, secondary.ChatRequest{
		System:      systemPrompt,
		User:        fmt.Sprintf(userPromptFormat, language, code, testInput),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	s.metrics.ObserveProviderCall(s.completer.Provider(), time.Since(start), err)
	if err != nil {
		s.logger.Error("Simulation failed", "provider", s.completer.Provider(), "error", err)
		return errs.MsgSimulationFailed(err)
	}

	out = strings.TrimSpace(out)
	s.logger.Info("Simulation finished", "length", len(out))
	return out
}
