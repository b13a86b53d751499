package template

import (
	"embed"
	"fmt"
	"path"

	"gitlab.com/algotutor.net/internal/domain"
)

//go:embed skeletons/*
var skeletonFS embed.FS

var skeletonFiles = map[domain.Category]string{
	domain.CategoryBFS:       "bfs.py",
	domain.CategoryDFS:       "dfs.py",
	domain.CategoryDijkstra:  "dijkstra.py",
	domain.CategoryMergeSort: "merge_sort.py",
	domain.CategorySQLSelect: "sql_select.sql",
}

var _ ITemplateService = (*TemplateStore)(nil)

// TemplateStore is an immutable category -> skeleton lookup loaded once
type TemplateStore struct {
	templates map[domain.Category]string
}

// NewTemplateStore reads every embedded skeleton
func NewTemplateStore() (*TemplateStore, error) {
	templates := make(map[domain.Category]string, len(skeletonFiles))
	for category, file := range skeletonFiles {
		data, err := skeletonFS.ReadFile(path.Join("skeletons", file))
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", category, err)
		}
		templates[category] = string(data)
	}
	return &TemplateStore{templates: templates}, nil
}

func (s *TemplateStore) Get(category domain.Category) string {
	return s.templates[category]
}

func (s *TemplateStore) Categories() []domain.Category {
	categories := make([]domain.Category, 0, len(s.templates))
	for _, c := range domain.Categories() {
		if _, ok := s.templates[c]; ok {
			categories = append(categories, c)
		}
	}
	return categories
}
