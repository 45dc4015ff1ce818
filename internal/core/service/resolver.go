package service

import (
	"fmt"

	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// ResolveResponse normalizes a handler return value into a canonical
// envelope. Handlers may return a *domain.Response directly, or a loose
// value (or slice of values) whose elements are inferred in order: a wire
// response type forces the envelope type, embeds and components accumulate,
// a string becomes the content, a choice list becomes an autocomplete
// result, a map is merged as raw overrides. Scalar fields follow last write
// wins; collections append. If nothing sets a type, the envelope defaults
// to a message.
func ResolveResponse(v any) (*domain.Response, error) {
	switch typed := v.(type) {
	case nil:
		return nil, domain.ErrNoResponse
	case *domain.Response:
		return typed, nil
	case domain.Response:
		return &typed, nil
	case *domain.WireResponse:
		return &domain.Response{Type: typed.Type, Raw: typed.Data}, nil
	}

	elements, ok := v.([]any)
	if !ok {
		elements = []any{v}
	}

	resp := &domain.Response{}
	typeSet := false

	for _, el := range elements {
		if err := accumulate(resp, el, &typeSet); err != nil {
			return nil, err
		}
	}

	if !typeSet {
		resp.Type = discordgo.InteractionResponseChannelMessageWithSource
	}

	return resp, nil
}

func accumulate(resp *domain.Response, el any, typeSet *bool) error {
	setDefault := func(t discordgo.InteractionResponseType) {
		if !*typeSet {
			resp.Type = t
			*typeSet = true
		}
	}

	switch typed := el.(type) {
	case discordgo.InteractionResponseType:
		resp.Type = typed
		*typeSet = true

	case *discordgo.MessageEmbed:
		resp.Embeds = append(resp.Embeds, typed)
		setDefault(discordgo.InteractionResponseChannelMessageWithSource)

	case discordgo.MessageEmbed:
		resp.Embeds = append(resp.Embeds, &typed)
		setDefault(discordgo.InteractionResponseChannelMessageWithSource)

	case string:
		resp.Content = typed
		setDefault(discordgo.InteractionResponseChannelMessageWithSource)

	case *discordgo.ApplicationCommandOptionChoice:
		resp.Choices = append(resp.Choices, typed)
		setDefault(discordgo.InteractionApplicationCommandAutocompleteResult)

	case []*discordgo.ApplicationCommandOptionChoice:
		resp.Choices = append(resp.Choices, typed...)
		setDefault(discordgo.InteractionApplicationCommandAutocompleteResult)

	case map[string]any:
		if resp.Raw == nil {
			resp.Raw = make(map[string]any, len(typed))
		}
		for k, v := range typed {
			resp.Raw[k] = v
		}

	case discordgo.MessageComponent:
		resp.Components = append(resp.Components, typed)
		if typed.Type() == discordgo.TextInputComponent {
			setDefault(discordgo.InteractionResponseModal)
		} else {
			setDefault(discordgo.InteractionResponseChannelMessageWithSource)
		}

	default:
		return fmt.Errorf("%w: %T", domain.ErrUnsupportedResponseElement, el)
	}

	return nil
}
