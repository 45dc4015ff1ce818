package port

import (
	"context"

	"floe/internal/core/domain"
)

type FollowupSender interface {
	// EditOriginalResponse replaces the deferred acknowledgment of an
	// interaction with the given response, using the interaction's
	// credentials.
	EditOriginalResponse(ctx context.Context, ic *domain.Interaction, resp *domain.Response) error
	// SendFollowupMessage delivers an additional message on the
	// interaction's follow-up endpoint.
	SendFollowupMessage(ctx context.Context, ic *domain.Interaction, resp *domain.Response) error
}
