package discord

import (
	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// webhookEdit converts an envelope into the edit-original payload. Ephemeral
// flags cannot be changed by an edit, so they are not mapped here.
func webhookEdit(resp *domain.Response) *discordgo.WebhookEdit {
	edit := &discordgo.WebhookEdit{}

	if resp.Content != "" {
		content := resp.Content
		edit.Content = &content
	}
	if len(resp.Embeds) > 0 {
		embeds := resp.Embeds
		edit.Embeds = &embeds
	}
	if rows := resp.ActionRows(); rows != nil {
		edit.Components = &rows
	}

	return edit
}

// webhookParams converts an envelope into a new follow-up message payload.
func webhookParams(resp *domain.Response) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content:    resp.Content,
		Embeds:     resp.Embeds,
		Components: resp.ActionRows(),
	}

	if resp.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return params
}
