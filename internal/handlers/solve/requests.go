package solve

import "gitlab.com/algotutor.net/internal/domain"

// SolveRequestBody is the JSON body accepted by /api/solve
type SolveRequestBody struct {
	Description string `json:"description"`
	Language    string `json:"language"`
	TestInput   string `json:"test_input"`
}

// pageView feeds the index template
type pageView struct {
	Description string
	TestInput   string
	Language    string
	Languages   []string
	Categories  []domain.Category
	Result      *domain.SolveResult
}

var languages = []string{"Python", "JavaScript", "Java", "C", "C++"}
