package handler

import (
	"fmt"

	"floe/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// decodeInteraction maps a decoded wire interaction onto the domain context.
// The handler kind is fixed here, at decode time; nothing downstream
// inspects payload types again.
func decodeInteraction(di *discordgo.Interaction) (*domain.Interaction, error) {
	ic := &domain.Interaction{
		ID:        di.ID,
		AppID:     di.AppID,
		GuildID:   di.GuildID,
		ChannelID: di.ChannelID,
		Token:     di.Token,
		Member:    di.Member,
		User:      di.User,
		Message:   di.Message,
	}

	switch di.Type {
	case discordgo.InteractionApplicationCommand:
		data := di.ApplicationCommandData()
		ic.Kind = domain.KindCommand
		ic.Name = data.Name
		ic.CommandType = data.CommandType
		ic.Options = data.Options

	case discordgo.InteractionApplicationCommandAutocomplete:
		data := di.ApplicationCommandData()
		ic.Kind = domain.KindAutocomplete
		ic.Name = data.Name
		ic.CommandType = data.CommandType
		ic.Options = data.Options

	case discordgo.InteractionMessageComponent:
		data := di.MessageComponentData()
		ic.Kind = domain.KindComponent
		ic.CustomID = data.CustomID
		ic.ComponentType = data.ComponentType
		ic.Values = data.Values

	case discordgo.InteractionModalSubmit:
		data := di.ModalSubmitData()
		ic.Kind = domain.KindModalSubmit
		ic.CustomID = data.CustomID
		ic.Components = data.Components

	default:
		return nil, fmt.Errorf("unsupported interaction type %d", di.Type)
	}

	return ic, nil
}
