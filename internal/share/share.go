// Package share models the optional platform share capability. When no
// Sharer is wired, or the share is rejected, callers fall back to the
// PDF export path.
package share

import "context"

// Payload is the title/text/url triple handed to the platform.
type Payload struct {
	Title string
	Text  string
	URL   string
}

type Sharer interface {
	Share(ctx context.Context, payload Payload) error
}

// Func adapts a plain function into a Sharer.
type Func func(ctx context.Context, payload Payload) error

func (f Func) Share(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}
