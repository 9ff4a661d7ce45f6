package orchestration

import (
	"github.com/agbru/fibdrv/internal/fibonacci"
)

// AllAlgorithms selects every registered engine.
const AllAlgorithms = "all"

// GetCalculatorsToRun returns the engines selected by algo, in the sorted
// order of factory.List. Unknown names yield nil.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == AllAlgorithms {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}
