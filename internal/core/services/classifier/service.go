package classifier

import "gitlab.com/algotutor.net/internal/domain"

// IClassifierService maps a free-text assignment description to a category
type IClassifierService interface {
	// Classify never fails; descriptions matching no rule are CategoryNone
	Classify(description string) domain.Category
}
