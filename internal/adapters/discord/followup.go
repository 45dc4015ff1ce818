package discord

import (
	"context"
	"fmt"

	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// FollowupSender delivers deferred results and follow-up messages over the
// interaction webhook endpoints, authenticated by the interaction's own
// credentials. Delivery is fire-and-forget from the core's point of view;
// retries, if any, belong here.
type FollowupSender struct {
	session *discordgo.Session
}

func NewFollowupSender(session *discordgo.Session) *FollowupSender {
	return &FollowupSender{session: session}
}

// EditOriginalResponse replaces the deferred acknowledgment with the final
// handler result.
func (f *FollowupSender) EditOriginalResponse(ctx context.Context, ic *domain.Interaction, resp *domain.Response) error {
	log.Debug().Str("interaction", ic.ID).Msg("editing original response")

	_, err := f.session.InteractionResponseEdit(interactionRef(ic), webhookEdit(resp), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("editing original response: %w", err)
	}

	return nil
}

// SendFollowupMessage posts a new message on the interaction's follow-up
// webhook.
func (f *FollowupSender) SendFollowupMessage(ctx context.Context, ic *domain.Interaction, resp *domain.Response) error {
	log.Debug().Str("interaction", ic.ID).Msg("sending followup message")

	_, err := f.session.FollowupMessageCreate(interactionRef(ic), true, webhookParams(resp), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending followup message: %w", err)
	}

	return nil
}

// interactionRef rebuilds the minimal interaction reference the webhook
// endpoints need: application id and token.
func interactionRef(ic *domain.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		AppID: ic.AppID,
		Token: ic.Token,
	}
}
