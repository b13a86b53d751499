package template

import "gitlab.com/algotutor.net/internal/domain"

// ITemplateService returns canonical code skeletons
type ITemplateService interface {
	// Get returns the skeleton for category, or "" when there is none
	Get(category domain.Category) string

	// Categories lists the categories a skeleton exists for
	Categories() []domain.Category
}
