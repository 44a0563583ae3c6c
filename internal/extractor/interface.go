package extractor

import "context"

// TextExtractor turns raw document bytes plus a file extension into plain
// text. Implementations must be safe for concurrent use.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, extension string) (string, error)
}

// strategy is one extraction path in a format's fallback cascade. A strategy
// either returns usable text or an error; empty text counts as failure so the
// cascade moves on.
type strategy struct {
	name string
	run  func(ctx context.Context, data []byte) (string, error)
}
