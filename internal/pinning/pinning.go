package pinning

import (
	"context"
	"io"
)

// Pinner stores content in a content-addressed store and returns its identifier
//
//go:generate mockgen -source=pinning.go -destination=../mocks/pinning.go -package=mocks -mock_names=Pinner=MockPinner
type Pinner interface {
	// Pin uploads r under name, preserving contentType, and returns the content identifier
	Pin(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}
