package domain

const NotAvailable = "N/A"

// Complexity holds the Big-O estimates returned by the model
type Complexity struct {
	Time  string `json:"time"`
	Space string `json:"space"`
}

// GenerationResult is the structured answer the model is asked to produce
type GenerationResult struct {
	Code        string     `json:"code"`
	Complexity  Complexity `json:"complexity"`
	Explanation string     `json:"explanation"`
}

// TimeOrNA returns the time complexity, or N/A when the model left it out
func (g GenerationResult) TimeOrNA() string {
	if g.Complexity.Time == "" {
		return NotAvailable
	}
	return g.Complexity.Time
}

// SpaceOrNA returns the space complexity, or N/A when the model left it out
func (g GenerationResult) SpaceOrNA() string {
	if g.Complexity.Space == "" {
		return NotAvailable
	}
	return g.Complexity.Space
}

// DecodeKind tags how a raw model response was interpreted
type DecodeKind int

const (
	DecodeParsed DecodeKind = iota + 1
	DecodeDegraded
)

func (k DecodeKind) String() string {
	switch k {
	case DecodeParsed:
		return "parsed"
	case DecodeDegraded:
		return "degraded"
	default:
		return ""
	}
}

// DecodedGeneration is the outcome of decoding a model response.
// Degraded results carry the cleaned raw text and the reason decoding failed.
type DecodedGeneration struct {
	Kind   DecodeKind
	Result GenerationResult
	Raw    string
	Reason string
}

func (d DecodedGeneration) Degraded() bool {
	return d.Kind == DecodeDegraded
}
