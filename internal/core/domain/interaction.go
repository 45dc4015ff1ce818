package domain

import (
	"context"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// HandlerKind is the closed set of interaction classes a handler can be
// registered for. The kind is decided once when the inbound payload is
// decoded, never by runtime type inspection.
type HandlerKind int

const (
	KindUnknown HandlerKind = iota
	KindCommand
	KindComponent
	KindAutocomplete
	KindModalSubmit
	KindCatchAll
)

func (k HandlerKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindComponent:
		return "component"
	case KindAutocomplete:
		return "autocomplete"
	case KindModalSubmit:
		return "modal_submit"
	case KindCatchAll:
		return "catch_all"
	default:
		return "unknown"
	}
}

// Deferrable reports whether interactions of this kind may be acknowledged
// with a deferred response. Autocomplete and modal submits must answer
// within the platform deadline and never auto-defer.
func (k HandlerKind) Deferrable() bool {
	return k == KindCommand || k == KindComponent
}

// Routine is a handler callback. It may return a canonical *Response or a
// loose value (string, embed, component, choice list, ...) which the
// response resolver normalizes.
type Routine func(ctx context.Context, ic *Interaction) (any, error)

// Interaction is the decoded inbound event handed to the dispatch engine.
// One Interaction is created per request and discarded once its response
// and any background follow-up complete.
type Interaction struct {
	ID        string
	AppID     string
	Kind      HandlerKind
	GuildID   string
	ChannelID string
	Token     string

	// Name is set for command and autocomplete interactions.
	Name        string
	CommandType discordgo.ApplicationCommandType
	Options     []*discordgo.ApplicationCommandInteractionDataOption

	// CustomID is set for component and modal-submit interactions.
	CustomID      string
	ComponentType discordgo.ComponentType
	Values        []string
	Components    []discordgo.MessageComponent

	Member  *discordgo.Member
	User    *discordgo.User
	Message *discordgo.Message

	// Params holds values extracted from a templated custom-id, keyed by
	// parameter name. Nil unless the handler was resolved via a template.
	Params map[string]any

	responded atomic.Bool
}

// MatchKey returns the registry lookup key for this interaction: the command
// name for commands and autocompletes, the custom-id for components and
// modal submits.
func (i *Interaction) MatchKey() string {
	switch i.Kind {
	case KindComponent, KindModalSubmit:
		return i.CustomID
	default:
		return i.Name
	}
}

// SubType returns the kind-specific sub-type used to narrow generic
// registrations: the command type for commands, the component type for
// components. Zero means no sub-type.
func (i *Interaction) SubType() int {
	switch i.Kind {
	case KindCommand, KindAutocomplete:
		return int(i.CommandType)
	case KindComponent:
		return int(i.ComponentType)
	default:
		return 0
	}
}

// Responded reports whether an initial response has been committed.
func (i *Interaction) Responded() bool {
	return i.responded.Load()
}

// MarkResponded flips the single-response flag. It returns
// ErrAlreadyResponded if a response was already committed; attempting a
// second initial response is a handler bug, not a recoverable condition.
func (i *Interaction) MarkResponded() error {
	if !i.responded.CompareAndSwap(false, true) {
		return ErrAlreadyResponded
	}
	return nil
}
