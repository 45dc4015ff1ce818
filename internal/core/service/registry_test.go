package service

import (
	"context"
	"testing"

	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopRoutine(_ context.Context, _ *domain.Interaction) (any, error) {
	return "ok", nil
}

func TestRegisterAndResolveExact(t *testing.T) {
	registry := NewHandlerRegistry()
	reg := &domain.Registration{Kind: domain.KindCommand, MatchKey: "hello", Routine: noopRoutine}

	require.NoError(t, registry.Register(reg))

	got, params, ok := registry.Resolve(domain.KindCommand, "hello", 0)
	require.True(t, ok)
	assert.Same(t, reg, got)
	assert.Nil(t, params)
}

func TestRegisterDuplicateFails(t *testing.T) {
	registry := NewHandlerRegistry()

	require.NoError(t, registry.Register(&domain.Registration{Kind: domain.KindCommand, MatchKey: "hello", Routine: noopRoutine}))

	err := registry.Register(&domain.Registration{Kind: domain.KindCommand, MatchKey: "hello", Routine: noopRoutine})
	require.ErrorIs(t, err, domain.ErrDuplicateRegistration)
}

func TestRegisterSameKeyDifferentKinds(t *testing.T) {
	registry := NewHandlerRegistry()

	require.NoError(t, registry.Register(&domain.Registration{Kind: domain.KindCommand, MatchKey: "hello", Routine: noopRoutine}))
	require.NoError(t, registry.Register(&domain.Registration{Kind: domain.KindAutocomplete, MatchKey: "hello", Routine: noopRoutine}))
}

func TestComponentSubTypeDistinguishesRegistrations(t *testing.T) {
	registry := NewHandlerRegistry()

	button := &domain.Registration{
		Kind:     domain.KindComponent,
		MatchKey: "pick",
		SubType:  int(discordgo.ButtonComponent),
		Routine:  noopRoutine,
	}
	sel := &domain.Registration{
		Kind:     domain.KindComponent,
		MatchKey: "pick",
		SubType:  int(discordgo.SelectMenuComponent),
		Routine:  noopRoutine,
	}

	require.NoError(t, registry.Register(button))
	require.NoError(t, registry.Register(sel))

	got, _, ok := registry.Resolve(domain.KindComponent, "pick", int(discordgo.SelectMenuComponent))
	require.True(t, ok)
	assert.Same(t, sel, got)
}

func TestResolvePrecedenceChain(t *testing.T) {
	registry := NewHandlerRegistry()

	exact := &domain.Registration{Kind: domain.KindComponent, MatchKey: "click_me", Routine: noopRoutine}
	genericButton := &domain.Registration{Kind: domain.KindComponent, SubType: int(discordgo.ButtonComponent), Routine: noopRoutine}
	generic := &domain.Registration{Kind: domain.KindComponent, Routine: noopRoutine}
	catchAll := &domain.Registration{Kind: domain.KindCatchAll, Routine: noopRoutine}

	require.NoError(t, registry.Register(exact))
	require.NoError(t, registry.Register(genericButton))
	require.NoError(t, registry.Register(generic))
	require.NoError(t, registry.Register(catchAll))

	type TestCase struct {
		description string
		matchKey    string
		subType     int
		kind        domain.HandlerKind
		want        *domain.Registration
	}

	testCases := []TestCase{
		{
			description: "exact match wins",
			kind:        domain.KindComponent,
			matchKey:    "click_me",
			subType:     int(discordgo.ButtonComponent),
			want:        exact,
		},
		{
			description: "generic narrowed to sub-type",
			kind:        domain.KindComponent,
			matchKey:    "unknown",
			subType:     int(discordgo.ButtonComponent),
			want:        genericButton,
		},
		{
			description: "unrestricted generic",
			kind:        domain.KindComponent,
			matchKey:    "unknown",
			subType:     int(discordgo.SelectMenuComponent),
			want:        generic,
		},
		{
			description: "catch-all for other kinds",
			kind:        domain.KindCommand,
			matchKey:    "unknown",
			want:        catchAll,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got, _, ok := registry.Resolve(testCase.kind, testCase.matchKey, testCase.subType)

			require.True(t, ok)
			assert.Same(t, testCase.want, got)
		})
	}
}

func TestResolveNoHandler(t *testing.T) {
	registry := NewHandlerRegistry()

	_, _, ok := registry.Resolve(domain.KindCommand, "unknown", 0)
	assert.False(t, ok)
}

func TestOnlyOneCatchAll(t *testing.T) {
	registry := NewHandlerRegistry()

	require.NoError(t, registry.Register(&domain.Registration{Kind: domain.KindCatchAll, Routine: noopRoutine}))

	err := registry.Register(&domain.Registration{Kind: domain.KindCatchAll, Routine: noopRoutine})
	require.ErrorIs(t, err, domain.ErrDuplicateRegistration)
}

func TestResolveTemplateMatch(t *testing.T) {
	registry := NewHandlerRegistry()

	reg := &domain.Registration{Kind: domain.KindComponent, MatchKey: "add_role:{role}", Routine: noopRoutine}
	require.NoError(t, registry.Register(reg))

	got, params, ok := registry.Resolve(domain.KindComponent, "add_role:123", int(discordgo.ButtonComponent))

	require.True(t, ok)
	assert.Same(t, reg, got)
	assert.Equal(t, map[string]any{"role": 123}, params)
}

func TestTemplateLosesToExactMatch(t *testing.T) {
	registry := NewHandlerRegistry()

	templated := &domain.Registration{Kind: domain.KindComponent, MatchKey: "add_role:{role}", Routine: noopRoutine}
	exact := &domain.Registration{Kind: domain.KindComponent, MatchKey: "add_role:admin", Routine: noopRoutine}

	require.NoError(t, registry.Register(templated))
	require.NoError(t, registry.Register(exact))

	got, _, ok := registry.Resolve(domain.KindComponent, "add_role:admin", 0)

	require.True(t, ok)
	assert.Same(t, exact, got)
}

func TestRegisterInvalidTemplateFails(t *testing.T) {
	registry := NewHandlerRegistry()

	err := registry.Register(&domain.Registration{Kind: domain.KindComponent, MatchKey: "role:{id}{user}", Routine: noopRoutine})
	require.Error(t, err)
}

func TestResolveIsIdempotent(t *testing.T) {
	registry := NewHandlerRegistry()

	reg := &domain.Registration{Kind: domain.KindComponent, MatchKey: "add_role:{role}", Routine: noopRoutine}
	require.NoError(t, registry.Register(reg))

	first, firstParams, ok := registry.Resolve(domain.KindComponent, "add_role:7", 0)
	require.True(t, ok)

	second, secondParams, ok := registry.Resolve(domain.KindComponent, "add_role:7", 0)
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, firstParams, secondParams)
}

func TestDeregisterRemovesEntry(t *testing.T) {
	registry := NewHandlerRegistry()

	reg := &domain.Registration{Kind: domain.KindCommand, MatchKey: "hello", Routine: noopRoutine}
	require.NoError(t, registry.Register(reg))

	registry.Deregister(reg)

	_, _, ok := registry.Resolve(domain.KindCommand, "hello", 0)
	assert.False(t, ok)
}

func TestDeregisterTemplateRemovesMatching(t *testing.T) {
	registry := NewHandlerRegistry()

	reg := &domain.Registration{Kind: domain.KindComponent, MatchKey: "add_role:{role}", Routine: noopRoutine}
	require.NoError(t, registry.Register(reg))

	registry.Deregister(reg)

	_, _, ok := registry.Resolve(domain.KindComponent, "add_role:123", 0)
	assert.False(t, ok)
}

func TestDeregisterUnknownIsNoOp(t *testing.T) {
	registry := NewHandlerRegistry()

	registry.Deregister(&domain.Registration{Kind: domain.KindCommand, MatchKey: "ghost", Routine: noopRoutine})

	_, _, ok := registry.Resolve(domain.KindCommand, "ghost", 0)
	assert.False(t, ok)
}
