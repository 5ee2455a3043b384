package vision

import "context"

// Provider reads the text out of an image reachable at a URL.
type Provider interface {
	ExtractText(ctx context.Context, imageURL string) (string, error)
}
