package domain

import "floe/internal/core/domain/pattern"

// Registration binds a routine to an interaction kind and match key. Entries
// are created during startup or an explicit load phase and are immutable
// afterwards, except for deregistration.
type Registration struct {
	Kind HandlerKind

	// MatchKey is the command name or component/modal custom-id this
	// registration answers to. It may be a template such as
	// "role:{id}:{user}". Empty means a generic fallback for the kind.
	MatchKey string

	// SubType optionally narrows a registration to one sub-type: an
	// ApplicationCommandType value for commands, a ComponentType value for
	// components. Zero means unrestricted.
	SubType int

	Routine Routine

	// Followup, if set, runs after the primary response (or deferred
	// follow-up) has been delivered; its result is sent as a separate new
	// follow-up message. Intended for side-effect style workflows.
	Followup Routine

	// Defer overrides the client-wide defer policy for this handler.
	Defer *DeferOverride

	// Template is populated by the registry when MatchKey contains
	// parameters. Treat as read-only.
	Template *pattern.Template
}
