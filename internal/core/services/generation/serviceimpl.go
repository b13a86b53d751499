package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/static/errs"
)

var _ IGenerationService = (*GenerationService)(nil)

const (
	maxTokens   = 2000
	temperature = 0.7
)

type GenerationService struct {
	completer secondary.ChatCompleter
	timeout   time.Duration
	logger    primary.Logger
	metrics   secondary.MetricsRecorder
}

// NewGenerationService builds the service. A nil completer means no provider is
// configured and every call returns the not-configured placeholder.
func NewGenerationService(
	completer secondary.ChatCompleter,
	timeout time.Duration,
	logger primary.Logger,
	metrics secondary.MetricsRecorder,
) *GenerationService {
	return &GenerationService{
		completer: completer,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

func (s *GenerationService) Generate(ctx context.Context, template, description, language string) domain.DecodedGeneration {
	if s.completer == nil {
		s.logger.Error("LLM client not configured", "error", errs.LLMNotConfigured)
		return placeholder(errs.MsgLLMCodeNotConfigured, errs.MsgLLMExplanationNotConfigured, errs.LLMNotConfigured.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.completer.Complete(callCtx, secondary.ChatRequest{
		System:      systemPrompt,
		User:        buildPrompt(template, description, language),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	s.metrics.ObserveProviderCall(s.completer.Provider(), time.Since(start), err)
	if err != nil {
		s.logger.Error("Generation failed", "provider", s.completer.Provider(), "error", err)
		return placeholder(errs.MsgGenerationCode(err), errs.MsgGenerationFailed(err), err.Error())
	}

	cleaned := stripFences(raw)
	decoded := s.decode(cleaned)
	s.logger.Info("Generation response received", "provider", s.completer.Provider(), "length", len(cleaned), "decode", decoded.Kind.String())

	return decoded
}

// decode accepts only a top-level JSON object, so a literal null does not pass
// as an empty result
func (s *GenerationService) decode(cleaned string) domain.DecodedGeneration {
	var result domain.GenerationResult
	err := errs.NotJSONObject
	if strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		err = json.Unmarshal([]byte(cleaned), &result)
	}
	if err != nil {
		s.logger.Warn("Generation response is not valid JSON", "error", err)
		decoded := placeholder(cleaned, errs.MsgJSONParseFailed, err.Error())
		decoded.Raw = cleaned
		return decoded
	}

	return domain.DecodedGeneration{
		Kind:   domain.DecodeParsed,
		Result: result,
		Raw:    cleaned,
	}
}

func placeholder(code, explanation, reason string) domain.DecodedGeneration {
	return domain.DecodedGeneration{
		Kind: domain.DecodeDegraded,
		Result: domain.GenerationResult{
			Code: code,
			Complexity: domain.Complexity{
				Time:  domain.NotAvailable,
				Space: domain.NotAvailable,
			},
			Explanation: explanation,
		},
		Reason: reason,
	}
}
