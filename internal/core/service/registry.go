package service

import (
	"fmt"

	"floe/internal/core/domain"
	"floe/internal/core/domain/pattern"

	"github.com/rs/zerolog/log"
)

type specificKey struct {
	match   string
	subType int
}

// HandlerRegistry stores registrations by kind, match key and sub-type.
// Tables are mutated only during startup or explicit load/unload phases and
// are read-mostly while serving; callers serialize load and unload
// externally.
type HandlerRegistry struct {
	specific  map[domain.HandlerKind]map[specificKey]*domain.Registration
	generic   map[domain.HandlerKind]map[int]*domain.Registration
	templates map[domain.HandlerKind][]*domain.Registration
	catchAll  *domain.Registration
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		specific:  make(map[domain.HandlerKind]map[specificKey]*domain.Registration),
		generic:   make(map[domain.HandlerKind]map[int]*domain.Registration),
		templates: make(map[domain.HandlerKind][]*domain.Registration),
	}
}

// Register adds a registration. An empty match key registers a generic
// fallback for the kind, optionally narrowed by sub-type; KindCatchAll
// claims the single process-wide catch-all slot. Templated custom-ids are
// parsed once here.
func (r *HandlerRegistry) Register(reg *domain.Registration) error {
	log.Info().
		Str("kind", reg.Kind.String()).
		Str("matchKey", reg.MatchKey).
		Int("subType", reg.SubType).
		Msg("adding handler to registry")

	if reg.Kind == domain.KindCatchAll {
		if r.catchAll != nil {
			return fmt.Errorf("catch-all: %w", domain.ErrDuplicateRegistration)
		}
		r.catchAll = reg
		return nil
	}

	if reg.MatchKey == "" {
		return r.registerGeneric(reg)
	}

	key := specificKey{match: reg.MatchKey}
	if reg.Kind == domain.KindComponent {
		key.subType = reg.SubType
	}

	if _, ok := r.specific[reg.Kind][key]; ok {
		return fmt.Errorf("%s %q: %w", reg.Kind, reg.MatchKey, domain.ErrDuplicateRegistration)
	}

	if templatedKind(reg.Kind) && pattern.HasParams(reg.MatchKey) {
		t, err := pattern.Parse(reg.MatchKey)
		if err != nil {
			return fmt.Errorf("parsing custom-id template %q: %w", reg.MatchKey, err)
		}
		reg.Template = t
		r.templates[reg.Kind] = append(r.templates[reg.Kind], reg)
	}

	if r.specific[reg.Kind] == nil {
		r.specific[reg.Kind] = make(map[specificKey]*domain.Registration)
	}
	r.specific[reg.Kind][key] = reg

	return nil
}

func (r *HandlerRegistry) registerGeneric(reg *domain.Registration) error {
	if _, ok := r.generic[reg.Kind][reg.SubType]; ok {
		return fmt.Errorf("generic %s: %w", reg.Kind, domain.ErrDuplicateRegistration)
	}

	if r.generic[reg.Kind] == nil {
		r.generic[reg.Kind] = make(map[int]*domain.Registration)
	}
	r.generic[reg.Kind][reg.SubType] = reg

	return nil
}

// Deregister removes exactly the given registration from whichever table
// holds it. Unknown registrations are ignored, so unloading a handler group
// twice is harmless.
func (r *HandlerRegistry) Deregister(reg *domain.Registration) {
	if r.catchAll == reg {
		r.catchAll = nil
		return
	}

	for key, entry := range r.specific[reg.Kind] {
		if entry == reg {
			delete(r.specific[reg.Kind], key)
			break
		}
	}

	for sub, entry := range r.generic[reg.Kind] {
		if entry == reg {
			delete(r.generic[reg.Kind], sub)
			break
		}
	}

	ts := r.templates[reg.Kind]
	for i, entry := range ts {
		if entry == reg {
			r.templates[reg.Kind] = append(ts[:i:i], ts[i+1:]...)
			break
		}
	}
}

// Resolve returns the first registration matching the interaction, in strict
// precedence order: exact key, custom-id template, generic fallback for the
// sub-type, unrestricted generic fallback, catch-all.
func (r *HandlerRegistry) Resolve(kind domain.HandlerKind, matchKey string, subType int) (*domain.Registration, map[string]any, bool) {
	log.Debug().
		Str("kind", kind.String()).
		Str("matchKey", matchKey).
		Int("subType", subType).
		Msg("resolving handler")

	if kind == domain.KindComponent {
		if reg, ok := r.specific[kind][specificKey{match: matchKey, subType: subType}]; ok {
			return reg, nil, true
		}
	}
	if reg, ok := r.specific[kind][specificKey{match: matchKey}]; ok {
		return reg, nil, true
	}

	if templatedKind(kind) {
		for _, reg := range r.templates[kind] {
			if reg.SubType != 0 && reg.SubType != subType {
				continue
			}
			if params, ok := reg.Template.Match(matchKey); ok {
				return reg, params, true
			}
		}
	}

	if reg, ok := r.generic[kind][subType]; ok && subType != 0 {
		return reg, nil, true
	}
	if reg, ok := r.generic[kind][0]; ok {
		return reg, nil, true
	}

	if r.catchAll != nil {
		return r.catchAll, nil, true
	}

	return nil, nil, false
}

// templatedKind reports whether a kind's match keys are custom-ids that may
// carry template parameters.
func templatedKind(kind domain.HandlerKind) bool {
	return kind == domain.KindComponent || kind == domain.KindModalSubmit
}
