package suggest

import (
	"context"
	"errors"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

var (
	ErrDisabled      = errors.New("suggest: no suggester configured")
	ErrUnusableReply = errors.New("suggest: unusable reply")
)

// Suggester proposes a priority bucket for a task draft.
type Suggester interface {
	SuggestPriority(ctx context.Context, title, description string) (model.Priority, error)
}

// Disabled is the Suggester used when no API key is configured.
type Disabled struct{}

func (Disabled) SuggestPriority(context.Context, string, string) (model.Priority, error) {
	return 0, ErrDisabled
}
