package generation

import (
	"context"

	"gitlab.com/algotutor.net/internal/domain"
)

// IGenerationService asks the model to complete a template for a description
type IGenerationService interface {
	// Generate never fails: configuration, transport and decode problems are
	// folded into a placeholder result.
	Generate(ctx context.Context, template, description, language string) domain.DecodedGeneration
}
