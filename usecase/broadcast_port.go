package usecase

import (
	"context"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

// ChangeBroadcaster abstracts the live-update fan-out so use cases stay
// transport-agnostic. Delivery is fire-and-forget, at most once: a subscriber
// that is disconnected or slow simply misses the event.
type ChangeBroadcaster interface {
	BroadcastTodo(ctx context.Context, event domain.TodoEvent)
}

// TokenIssuer mints session tokens after a successful registration or login.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
