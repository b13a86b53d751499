package errs

import "errors"

var (
	DescriptionRequired = errors.New("description is required")
	DescriptionTooLong  = errors.New("description too long")
)

var (
	LLMNotConfigured      = errors.New("llm client not configured")
	ExecutorNotConfigured = errors.New("execution credentials not configured")
	QuotaExhausted        = errors.New("daily execution quota exhausted")
	EmptyCompletion       = errors.New("no completion returned")
	ProviderStatus        = errors.New("provider returned non-success status")
	NotJSONObject         = errors.New("response is not a JSON object")
)

var UnknownQuotaBackend = errors.New("unknown quota backend")
