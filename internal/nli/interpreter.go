package nli

import "context"

// Interpreter turns raw text into an Intent.
type Interpreter interface {
	// Interpret sends text to the NLI service and returns its first interpretation.
	Interpret(ctx context.Context, text string) (Intent, error)
}

// Strategy identifies the interpreter backend.
type Strategy string

const (
	StrategyOlami Strategy = "olami"
)
