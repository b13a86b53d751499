package classifier

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/domain"
)

var _ IClassifierService = (*ClassifierService)(nil)

type rule struct {
	category domain.Category
	keywords []string
}

// rules are evaluated in order, the first hit wins
var rules = []rule{
	{domain.CategoryBFS, []string{"bfs", "breadth", "廣度", "層序", "樹"}},
	{domain.CategoryDFS, []string{"dfs", "depth", "深度"}},
	{domain.CategoryDijkstra, []string{"dijkstra", "最短路徑", "shortest path"}},
	{domain.CategoryMergeSort, []string{"sort", "排序", "merge", "歸併"}},
	{domain.CategorySQLSelect, []string{"sql", "資料庫", "database", "select", "query"}},
}

// ClassifierService does case-insensitive substring matching against fixed keyword sets
type ClassifierService struct {
	logger primary.Logger
}

func NewClassifierService(logger primary.Logger) *ClassifierService {
	return &ClassifierService{logger: logger}
}

func (s *ClassifierService) Classify(description string) domain.Category {
	if description == "" {
		return domain.CategoryNone
	}

	text := strings.ToLower(description)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return r.category
			}
		}
	}

	s.logger.Info("Description not classified", "description", preview(description, 50))
	return domain.CategoryNone
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
