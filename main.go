package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"floe/internal/adapters/discord"
	"floe/internal/adapters/handler"
	"floe/internal/core/domain"
	"floe/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting floe...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	session, err := discordgo.New("Bot " + viper.GetString("discord.bot_token"))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing discord session")
	}

	deferTimeout, err := time.ParseDuration(viper.GetString("handler.defer_timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid defer timeout in config")
	}

	defaults := domain.DeferPolicy{
		Enabled:   viper.GetBool("handler.auto_defer"),
		Timeout:   deferTimeout,
		Ephemeral: viper.GetBool("handler.defer_ephemeral"),
	}

	registry := service.NewHandlerRegistry()
	registerHandlers(registry)

	appID := viper.GetString("discord.application_id")
	guildID := viper.GetString("discord.guild_id")

	if err := discord.SyncCommands(ctx, session, appID, guildID, commandDefinitions()); err != nil {
		log.Error().Err(err).Msg("failed to sync application commands")
	}

	dispatcher := service.NewDispatcher(registry, discord.NewFollowupSender(session), defaults)

	interactions, err := handler.NewInteractions(dispatcher, viper.GetString("discord.public_key"))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing interactions handler")
	}

	mux := http.NewServeMux()
	mux.Handle("POST /interactions", interactions)

	server := &http.Server{
		Addr:              viper.GetString("server.address"),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("address", server.Addr).Msg("listening for interactions")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// registerHandlers wires the example handlers: a /hello command that offers
// a templated button, the button callback, and a catch-all.
func registerHandlers(registry *service.HandlerRegistry) {
	mustRegister := func(reg *domain.Registration) {
		if err := registry.Register(reg); err != nil {
			log.Panic().Err(err).Msg("failed to register handler")
		}
	}

	mustRegister(&domain.Registration{
		Kind:     domain.KindCommand,
		MatchKey: "hello",
		Routine: func(_ context.Context, ic *domain.Interaction) (any, error) {
			resp := domain.MessageResponse("Click this button!")
			resp.Components = append(resp.Components, discordgo.Button{
				Label:    "Click me!",
				Style:    discordgo.PrimaryButton,
				CustomID: "click_me:1",
			})
			return resp, nil
		},
	})

	mustRegister(&domain.Registration{
		Kind:     domain.KindComponent,
		MatchKey: "click_me:{count}",
		Routine: func(_ context.Context, ic *domain.Interaction) (any, error) {
			return domain.UpdateResponse("You clicked me!"), nil
		},
	})

	mustRegister(&domain.Registration{
		Kind: domain.KindCatchAll,
		Routine: func(_ context.Context, ic *domain.Interaction) (any, error) {
			return "I don't know what to do with this one.", nil
		},
	})
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "hello",
			Description: "Says hello with a button",
		},
	}
}
