// Package id generates the short public IDs used in Re:view URLs.
//
// Public IDs are NanoIDs over the URL-safe alphabet (A-Za-z0-9_-), with a
// fixed length per entity kind. They are the only identifiers exposed to
// clients; rows key on them directly.
package id

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Kind selects the entity namespace an ID is drawn for.
type Kind string

// Entity kinds with public IDs.
const (
	KindUser    Kind = "user"
	KindReview  Kind = "review"
	KindComment Kind = "comment"
)

// Length returns the ID length for the kind. Shorter IDs go to entities
// that appear in shareable URLs most often.
func (k Kind) Length() int {
	switch k {
	case KindUser:
		return 8
	case KindReview:
		return 12
	case KindComment:
		return 16
	default:
		return 0
	}
}

// Checker reports whether an ID is already taken within a kind's namespace.
type Checker interface {
	AliasExists(ctx context.Context, kind Kind, id string) (bool, error)
}

// Generator produces collision-checked public IDs.
type Generator struct {
	checker Checker
}

// NewGenerator creates a Generator backed by the given existence checker.
func NewGenerator(checker Checker) *Generator {
	return &Generator{checker: checker}
}

// Generate draws a random ID for the kind, redrawing until the checker
// reports it unused. There is no retry cap: at 8 chars over a 64-symbol
// alphabet the space is ~2.8e14, so consecutive collisions are vanishingly
// rare at any realistic row count. The check-then-insert gap is closed by
// UNIQUE constraints on the ID columns; a lost race surfaces as a conflict
// from the store.
func (g *Generator) Generate(ctx context.Context, kind Kind) (string, error) {
	length := kind.Length()
	if length == 0 {
		return "", fmt.Errorf("unknown id kind %q", kind)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate, err := gonanoid.New(length)
		if err != nil {
			return "", fmt.Errorf("generate nanoid: %w", err)
		}

		taken, err := g.checker.AliasExists(ctx, kind, candidate)
		if err != nil {
			return "", fmt.Errorf("check id collision: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// New draws a single unchecked ID of the given length. Used where no
// namespace lookup applies (e.g., SSE client IDs, session IDs).
func New(length int) (string, error) {
	id, err := gonanoid.New(length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}

// MustNew is like New but panics if ID generation fails. Use only where
// failure should crash the program (e.g., during initialization).
func MustNew(length int) string {
	id, err := New(length)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
