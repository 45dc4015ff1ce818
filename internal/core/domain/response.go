package domain

import "github.com/bwmarrin/discordgo"

// Response is the canonical envelope a handler result is normalized into
// before serialization or follow-up delivery.
type Response struct {
	Type discordgo.InteractionResponseType

	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool

	// Choices is the autocomplete result set.
	Choices []*discordgo.ApplicationCommandOptionChoice

	// CustomID and Title describe a modal prompt.
	CustomID string
	Title    string

	// Raw holds keyword overrides merged into the wire payload last,
	// overwriting any field-derived entries.
	Raw map[string]any

	// Task optionally carries the continuation of a handler-returned
	// deferred response. The dispatch engine runs it in the background after
	// sending the deferred acknowledgment.
	Task Routine
}

// WireResponse is the status-coded JSON object handed back to the transport
// layer.
type WireResponse struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data map[string]any                    `json:"data,omitempty"`
}

// MessageResponse builds a message envelope with the given textual content.
func MessageResponse(content string) *Response {
	return &Response{
		Type:    discordgo.InteractionResponseChannelMessageWithSource,
		Content: content,
	}
}

// UpdateResponse builds an envelope that edits the message a component is
// attached to.
func UpdateResponse(content string) *Response {
	return &Response{
		Type:    discordgo.InteractionResponseUpdateMessage,
		Content: content,
	}
}

// DeferredResponse builds a deferred acknowledgment carrying its own
// continuation. The wire type is rewritten for the interaction kind right
// before serialization.
func DeferredResponse(task Routine, ephemeral bool) *Response {
	return &Response{
		Type:      discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Ephemeral: ephemeral,
		Task:      task,
	}
}

// AutocompleteResponse builds an autocomplete choice list envelope.
func AutocompleteResponse(choices ...*discordgo.ApplicationCommandOptionChoice) *Response {
	return &Response{
		Type:    discordgo.InteractionApplicationCommandAutocompleteResult,
		Choices: choices,
	}
}

// ModalResponse builds a modal prompt envelope.
func ModalResponse(customID, title string, components ...discordgo.MessageComponent) *Response {
	return &Response{
		Type:       discordgo.InteractionResponseModal,
		CustomID:   customID,
		Title:      title,
		Components: components,
	}
}

// DeferredAck builds the acknowledgment sent when the auto-defer timer wins
// the race. Component interactions use a distinct wire code from commands.
func DeferredAck(kind HandlerKind, ephemeral bool) *Response {
	r := &Response{
		Type:      discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Ephemeral: ephemeral,
	}
	r.CorrectDeferType(kind)
	return r
}

// Deferred reports whether the envelope is a deferred acknowledgment.
func (r *Response) Deferred() bool {
	return r.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource ||
		r.Type == discordgo.InteractionResponseDeferredMessageUpdate
}

// CorrectDeferType rewrites a deferred envelope's wire code for the
// interaction kind. Required final step before serialization: commands and
// components acknowledge with different numeric codes.
func (r *Response) CorrectDeferType(kind HandlerKind) {
	if !r.Deferred() {
		return
	}
	if kind == KindComponent {
		r.Type = discordgo.InteractionResponseDeferredMessageUpdate
	} else {
		r.Type = discordgo.InteractionResponseDeferredChannelMessageWithSource
	}
}

// ActionRows returns the component tree with loose components wrapped into
// an action row, as the wire format requires. Already-wrapped rows pass
// through unchanged.
func (r *Response) ActionRows() []discordgo.MessageComponent {
	if len(r.Components) == 0 {
		return nil
	}

	var rows []discordgo.MessageComponent
	var loose []discordgo.MessageComponent

	for _, c := range r.Components {
		if c.Type() == discordgo.ActionsRowComponent {
			rows = append(rows, c)
			continue
		}
		loose = append(loose, c)
	}

	if len(loose) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: loose})
	}

	return rows
}

// Wire serializes the envelope into the transport response object. Raw
// overrides are merged last, so they win over field-derived entries.
func (r *Response) Wire() *WireResponse {
	w := &WireResponse{Type: r.Type}

	switch r.Type {
	case discordgo.InteractionResponsePong:
		// no payload

	case discordgo.InteractionResponseDeferredChannelMessageWithSource,
		discordgo.InteractionResponseDeferredMessageUpdate:
		if r.Ephemeral {
			w.Data = map[string]any{"flags": discordgo.MessageFlagsEphemeral}
		}

	case discordgo.InteractionApplicationCommandAutocompleteResult:
		choices := r.Choices
		if choices == nil {
			choices = []*discordgo.ApplicationCommandOptionChoice{}
		}
		w.Data = map[string]any{"choices": choices}

	case discordgo.InteractionResponseModal:
		w.Data = map[string]any{
			"custom_id":  r.CustomID,
			"title":      r.Title,
			"components": modalRows(r.Components),
		}

	default:
		data := make(map[string]any)
		if r.Content != "" {
			data["content"] = r.Content
		}
		if len(r.Embeds) > 0 {
			data["embeds"] = r.Embeds
		}
		if rows := r.ActionRows(); rows != nil {
			data["components"] = rows
		}
		if r.Ephemeral {
			data["flags"] = discordgo.MessageFlagsEphemeral
		}
		if len(data) > 0 {
			w.Data = data
		}
	}

	for k, v := range r.Raw {
		if w.Data == nil {
			w.Data = make(map[string]any, len(r.Raw))
		}
		w.Data[k] = v
	}

	return w
}

// modalRows wraps every text input into its own action row.
func modalRows(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(components))
	for _, c := range components {
		if c.Type() == discordgo.ActionsRowComponent {
			rows = append(rows, c)
			continue
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{c}})
	}
	return rows
}
