package core

import "context"

// UseCase is a single unit of business logic. Res is normally a Result.
//
// A failed Result is a domain error; a returned error is an unexpected
// failure that controllers forward to the centralized error handler.
type UseCase[Req, Res any] interface {
	Execute(ctx context.Context, req Req) (Res, error)
}

// UseCaseFunc adapts an ordinary function to the UseCase interface.
type UseCaseFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Execute calls f(ctx, req).
func (f UseCaseFunc[Req, Res]) Execute(ctx context.Context, req Req) (Res, error) {
	return f(ctx, req)
}

// NoRequest is the request type of use cases that take no input.
type NoRequest struct{}
