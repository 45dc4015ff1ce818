package service

import (
	"context"
	"fmt"
	"time"

	"floe/internal/core/domain"
	"floe/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher owns the full lifecycle of one inbound interaction: handler
// resolution, execution, the auto-defer race and background follow-up
// delivery.
type Dispatcher struct {
	registry port.Registry
	followup port.FollowupSender
	defaults domain.DeferPolicy
}

func NewDispatcher(registry port.Registry, followup port.FollowupSender, defaults domain.DeferPolicy) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		followup: followup,
		defaults: defaults,
	}
}

type taskResult struct {
	value any
	err   error
}

// Dispatch resolves the interaction's handler, runs it, and returns the wire
// response. When the effective defer policy is enabled and the handler loses
// the race against the defer timer, a deferred acknowledgment is returned
// immediately and the still-running handler is observed by a background
// continuation that delivers its result through the follow-up endpoint. The
// timer never cancels the handler.
func (d *Dispatcher) Dispatch(ctx context.Context, ic *domain.Interaction) (*domain.WireResponse, error) {
	reg, params, ok := d.registry.Resolve(ic.Kind, ic.MatchKey(), ic.SubType())
	if !ok {
		return nil, domain.ErrHandlerNotFound
	}
	ic.Params = params

	l := log.With().
		Str("interaction", ic.ID).
		Str("kind", ic.Kind.String()).
		Str("matchKey", ic.MatchKey()).
		Logger()

	l.Info().Msg("handling interaction")

	// The handler must keep running after the request returns, so its
	// context does not carry the request's cancellation.
	taskCtx := context.WithoutCancel(ctx)
	results := d.launch(taskCtx, reg, ic, l)

	policy := d.defaults.Merge(reg.Defer)

	if policy.Enabled && ic.Kind.Deferrable() {
		timer := time.NewTimer(policy.Timeout)
		defer timer.Stop()

		select {
		case res := <-results:
			return d.respond(taskCtx, ic, reg, res, l)
		case <-timer.C:
			l.Debug().Dur("timeout", policy.Timeout).Msg("handler passed defer deadline, acknowledging deferred")

			if ic.Responded() {
				return nil, domain.ErrAlreadyResponded
			}

			go d.continueDeferred(taskCtx, ic, reg, results, l)

			// A deferred ack does not consume the response slot; the
			// follow-up edit is the terminal action for this interaction.
			return domain.DeferredAck(ic.Kind, policy.Ephemeral).Wire(), nil
		}
	}

	return d.respond(taskCtx, ic, reg, <-results, l)
}

// launch runs the routine as an independent unit of work. A panicking
// handler surfaces as an error result instead of taking down the server.
func (d *Dispatcher) launch(ctx context.Context, reg *domain.Registration, ic *domain.Interaction, l zerolog.Logger) <-chan taskResult {
	results := make(chan taskResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error().Interface("panic", rec).Msg("handler panicked")
				results <- taskResult{err: fmt.Errorf("handler panic: %v", rec)}
			}
		}()

		value, err := reg.Routine(ctx, ic)
		results <- taskResult{value: value, err: err}
	}()

	return results
}

// respond turns a completed task into the synchronous wire response and
// enforces the single-response invariant.
func (d *Dispatcher) respond(ctx context.Context, ic *domain.Interaction, reg *domain.Registration, res taskResult, l zerolog.Logger) (*domain.WireResponse, error) {
	if res.err != nil {
		return nil, fmt.Errorf("handler failed: %w", res.err)
	}

	resp, err := ResolveResponse(res.value)
	if err != nil {
		return nil, err
	}

	if resp.Deferred() {
		// The handler asked for a deferred ack itself, carrying its own
		// continuation. Same rules as losing the race: the slot stays open.
		resp.CorrectDeferType(ic.Kind)

		if ic.Responded() {
			return nil, domain.ErrAlreadyResponded
		}

		if resp.Task != nil {
			go d.continueDeferred(ctx, ic, reg, d.launch(ctx, &domain.Registration{Routine: resp.Task, Followup: reg.Followup}, ic, l), l)
		}

		return resp.Wire(), nil
	}

	if err := ic.MarkResponded(); err != nil {
		return nil, err
	}

	return resp.Wire(), nil
}

// continueDeferred awaits the still-running task after a deferred ack was
// sent, delivers its result by editing the original response and then runs
// the optional followup routine. Nothing raised in here may reach the
// serving process; failures are logged and the interaction stays deferred.
func (d *Dispatcher) continueDeferred(ctx context.Context, ic *domain.Interaction, reg *domain.Registration, results <-chan taskResult, l zerolog.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			l.Error().Interface("panic", rec).Msg("panic in deferred continuation")
		}
	}()

	res := <-results
	if res.err != nil {
		l.Err(res.err).Msg("deferred handler failed")
		return
	}

	resp, err := ResolveResponse(res.value)
	if err != nil {
		l.Err(err).Msg("failed to resolve deferred handler response")
		return
	}

	if err := d.followup.EditOriginalResponse(ctx, ic, resp); err != nil {
		l.Err(err).Msg("failed to edit original response")
		return
	}

	l.Debug().Msg("deferred response delivered")

	if reg.Followup != nil {
		d.runFollowup(ctx, ic, reg, l)
	}
}

// runFollowup executes the secondary followup routine strictly after the
// primary delivery and sends its result as a new follow-up message.
func (d *Dispatcher) runFollowup(ctx context.Context, ic *domain.Interaction, reg *domain.Registration, l zerolog.Logger) {
	value, err := reg.Followup(ctx, ic)
	if err != nil {
		l.Err(err).Msg("followup routine failed")
		return
	}

	resp, err := ResolveResponse(value)
	if err != nil {
		l.Err(err).Msg("failed to resolve followup response")
		return
	}

	if err := d.followup.SendFollowupMessage(ctx, ic, resp); err != nil {
		l.Err(err).Msg("failed to send followup message")
	}
}
