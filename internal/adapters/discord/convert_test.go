package discord

import (
	"testing"

	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEditMapsFields(t *testing.T) {
	resp := domain.MessageResponse("edited")
	resp.Embeds = []*discordgo.MessageEmbed{{Title: "hi"}}
	resp.Components = []discordgo.MessageComponent{
		discordgo.Button{Label: "a", CustomID: "a"},
	}

	edit := webhookEdit(resp)

	require.NotNil(t, edit.Content)
	assert.Equal(t, "edited", *edit.Content)
	require.NotNil(t, edit.Embeds)
	assert.Len(t, *edit.Embeds, 1)
	require.NotNil(t, edit.Components)
	assert.Len(t, *edit.Components, 1)
}

func TestWebhookEditOmitsEmptyFields(t *testing.T) {
	edit := webhookEdit(&domain.Response{})

	assert.Nil(t, edit.Content)
	assert.Nil(t, edit.Embeds)
	assert.Nil(t, edit.Components)
}

func TestWebhookParamsMapsFields(t *testing.T) {
	resp := domain.MessageResponse("followup")
	resp.Ephemeral = true

	params := webhookParams(resp)

	assert.Equal(t, "followup", params.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, params.Flags)
}

func TestInteractionRefCarriesCredentials(t *testing.T) {
	ic := &domain.Interaction{AppID: "app123", Token: "tok456"}

	ref := interactionRef(ic)

	assert.Equal(t, "app123", ref.AppID)
	assert.Equal(t, "tok456", ref.Token)
}
