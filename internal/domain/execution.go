package domain

// ExecutionRequest is the body sent to the code-execution provider
type ExecutionRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Script       string `json:"script"`
	Language     string `json:"language"`
	VersionIndex string `json:"versionIndex"`
	Stdin        string `json:"stdin"`
}

// ExecutionResponse is the provider's reply
type ExecutionResponse struct {
	Output     string `json:"output"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
	Memory     string `json:"memory,omitempty"`
	CPUTime    string `json:"cpuTime,omitempty"`
}

// ExecutionOutcome is what the execution client reports back to the request handler.
// Output always holds something displayable, a diagnostic on failure.
type ExecutionOutcome struct {
	Output         string
	Attempted      bool
	QuotaExhausted bool
}
