// Package handler exposes the dispatch engine over HTTP: one POST endpoint
// receiving signed interaction payloads from the platform.
package handler

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"floe/internal/core/domain"
	"floe/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Interactions verifies, decodes and dispatches inbound interaction
// requests. Only requests carrying a valid Ed25519 signature for the
// configured public key reach the dispatcher.
type Interactions struct {
	dispatcher port.Dispatcher
	publicKey  ed25519.PublicKey
}

func NewInteractions(dispatcher port.Dispatcher, publicKeyHex string) (*Interactions, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}

	if len(key) != ed25519.PublicKeySize {
		return nil, errors.New("public key has wrong length")
	}

	return &Interactions{
		dispatcher: dispatcher,
		publicKey:  ed25519.PublicKey(key),
	}, nil
}

func (h *Interactions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestID, _ := uuid.NewV4()
	l := log.With().Str("requestId", requestID.String()).Logger()

	if !discordgo.VerifyInteraction(r, h.publicKey) {
		l.Warn().Msg("rejecting request with invalid signature")
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid signature"})
		return
	}

	var di discordgo.Interaction
	if err := json.NewDecoder(r.Body).Decode(&di); err != nil {
		l.Err(err).Msg("failed to decode interaction payload")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}

	if di.Type == discordgo.InteractionPing {
		l.Debug().Msg("answering ping")
		writeJSON(w, http.StatusOK, &domain.WireResponse{Type: discordgo.InteractionResponsePong})
		return
	}

	ic, err := decodeInteraction(&di)
	if err != nil {
		l.Err(err).Msg("unsupported interaction")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported interaction type"})
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), ic)
	switch {
	case errors.Is(err, domain.ErrHandlerNotFound):
		l.Debug().Str("matchKey", ic.MatchKey()).Msg("no handler for interaction")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "command not found"})
	case err != nil:
		l.Err(err).Str("matchKey", ic.MatchKey()).Msg("dispatch failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to write response body")
	}
}
