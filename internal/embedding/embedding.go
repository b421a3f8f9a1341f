// Package embedding provides the gateway to external text-embedding services.
// The matching core treats embedding as a pure batched function: N texts in,
// N fixed-length vectors out, same order.
package embedding

import "context"

// Gateway converts text into dense vectors. Implementations must return one
// vector per input text in input order, and an empty (non-error) result for
// empty input.
type Gateway interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Func adapts a plain function to the Gateway interface.
type Func func(ctx context.Context, texts []string) ([][]float64, error)

func (f Func) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}
