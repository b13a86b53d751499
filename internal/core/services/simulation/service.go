package simulation

import "context"

// ISimulationService asks the model to predict a program's output
type ISimulationService interface {
	Simulate(ctx context.Context, code, language, testInput string) string
}
