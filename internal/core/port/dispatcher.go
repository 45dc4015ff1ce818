package port

import (
	"context"

	"floe/internal/core/domain"
)

type Dispatcher interface {
	// Dispatch resolves and executes the handler for one inbound
	// interaction and returns the wire response to send back. It returns
	// domain.ErrHandlerNotFound when no registration matches.
	Dispatch(ctx context.Context, ic *domain.Interaction) (*domain.WireResponse, error)
}
