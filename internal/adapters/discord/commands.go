package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// SyncCommands overwrites the application's command set so the definitions
// registered with the platform match the handlers this process serves. An
// empty guildID targets global commands.
func SyncCommands(ctx context.Context, session *discordgo.Session, appID, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Info().Int("commands", len(commands)).Str("guildID", guildID).Msg("syncing application commands")

	_, err := session.ApplicationCommandBulkOverwrite(appID, guildID, commands, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("overwriting application commands: %w", err)
	}

	return nil
}
