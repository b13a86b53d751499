package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLanguage = "Python"

// SolveStage tracks how far a submission got through the pipeline
type SolveStage string

const (
	StageIdle       SolveStage = "IDLE"
	StageValidating SolveStage = "VALIDATING"
	StageClassified SolveStage = "CLASSIFIED"
	StageGenerated  SolveStage = "GENERATED"
	StageSimulated  SolveStage = "SIMULATED"
	StageExecuted   SolveStage = "EXECUTED"
	StageResponded  SolveStage = "RESPONDED"
	StageErrored    SolveStage = "ERRORED"
)

// SolveRequest is one form submission
type SolveRequest struct {
	RequestID   uuid.UUID
	Description string
	Language    string
	TestInput   string
}

// NewSolveRequest creates a submission, defaulting the language
func NewSolveRequest(description, language, testInput string) *SolveRequest {
	if language == "" {
		language = DefaultLanguage
	}
	return &SolveRequest{
		RequestID:   uuid.New(),
		Description: description,
		Language:    language,
		TestInput:   testInput,
	}
}

// SolveResult is the response payload rendered back to the user
type SolveResult struct {
	RequestID          uuid.UUID  `json:"request_id"`
	Category           Category   `json:"category,omitempty"`
	Result             string     `json:"result,omitempty"`
	OptimizationAdvice string     `json:"optimization_advice,omitempty"`
	Complexity         string     `json:"complexity,omitempty"`
	Lint               string     `json:"lint,omitempty"`
	SimulatedOutput    string     `json:"simulated_output,omitempty"`
	JDoodleOutput      string     `json:"jdoodle_output,omitempty"`
	Language           string     `json:"language,omitempty"`
	QuotaExceeded      bool       `json:"quota_exceeded"`
	ErrorMessage       string     `json:"error_message,omitempty"`
	Stage              SolveStage `json:"stage"`
	Degraded           bool       `json:"-"`
}

// Failed reports whether the submission ended in the error state
func (r *SolveResult) Failed() bool {
	return r.Stage == StageErrored
}

// SolveEvent is published after each handled submission
type SolveEvent struct {
	RequestID     uuid.UUID  `json:"request_id"`
	Category      Category   `json:"category"`
	Language      string     `json:"language"`
	HasTestInput  bool       `json:"has_test_input"`
	QuotaExceeded bool       `json:"quota_exceeded"`
	Degraded      bool       `json:"degraded"`
	Stage         SolveStage `json:"stage"`
	DurationMs    int64      `json:"duration_ms"`
	Timestamp     time.Time  `json:"timestamp"`
}
