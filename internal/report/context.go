package report

import "context"

type descriptionKey struct{}

// NewContext returns a copy of ctx carrying d, the node currently executing.
func NewContext(ctx context.Context, d Description) context.Context {
	return context.WithValue(ctx, descriptionKey{}, d)
}

// FromContext returns the Description stored by NewContext.
func FromContext(ctx context.Context) (Description, bool) {
	d, ok := ctx.Value(descriptionKey{}).(Description)
	return d, ok
}
