package nli

import (
	"github.com/drewdunne/nlibot/internal/config"
)

// InterpreterFactory creates an Interpreter from the NLI configuration.
type InterpreterFactory func(cfg config.NLIConfig) (Interpreter, error)

// registry holds registered interpreter factories by strategy.
var registry = make(map[Strategy]InterpreterFactory)

// Register registers an interpreter factory for a strategy.
func Register(strategy Strategy, factory InterpreterFactory) {
	registry[strategy] = factory
}

// NewInterpreter creates an interpreter based on the configured strategy.
func NewInterpreter(cfg *config.Config) (Interpreter, error) {
	strategy := Strategy(cfg.NLI.Strategy)
	if strategy == "" {
		strategy = StrategyOlami
	}

	factory, ok := registry[strategy]
	if !ok {
		if strategy == StrategyOlami {
			return nil, &ConfigurationError{
				Field:  "nli.strategy",
				Reason: `olami strategy not registered (import _ "github.com/drewdunne/nlibot/internal/nli/olami")`,
			}
		}
		return nil, &ConfigurationError{Field: "nli.strategy", Reason: "unknown strategy " + string(strategy)}
	}
	return factory(cfg.NLI)
}
