package port

import "floe/internal/core/domain"

type Registry interface {
	// Register adds a registration to the registry. It returns
	// domain.ErrDuplicateRegistration if an entry with the same kind, match
	// key and sub-type already exists.
	Register(reg *domain.Registration) error
	// Deregister removes exactly the given registration. Removing an entry
	// that is not registered is a no-op.
	Deregister(reg *domain.Registration)
	// Resolve looks up the registration for an interaction in precedence
	// order: exact match, custom-id template match, generic fallback
	// narrowed to the sub-type, unrestricted generic fallback, catch-all.
	// The returned map holds template parameter values when the match came
	// from a template.
	Resolve(kind domain.HandlerKind, matchKey string, subType int) (*domain.Registration, map[string]any, bool)
}
