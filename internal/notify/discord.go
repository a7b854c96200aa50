package notify

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
)

const (
	successColor = 0x00FF00
	errorColor   = 0xFF0000
	infoColor    = 0x0099FF
)

type embedSender interface {
	CreateEmbeds(embeds []discord.Embed, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Discord mirrors toasts to a Discord channel webhook.
type Discord struct {
	client embedSender
}

func NewDiscord(webhookURL string) (*Discord, error) {
	client, err := webhook.NewWithURL(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid discord webhook url: %w", err)
	}
	return &Discord{client: client}, nil
}

func (d *Discord) Notify(ctx context.Context, t Toast) error {
	embed := discord.Embed{
		Title:       t.Title,
		Description: t.Description,
		Color:       kindColor(t.Kind),
	}
	if !t.CreatedAt.IsZero() {
		ts := t.CreatedAt
		embed.Timestamp = &ts
	}
	if _, err := d.client.CreateEmbeds([]discord.Embed{embed}, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to post to discord webhook: %w", err)
	}
	return nil
}

func kindColor(k Kind) int {
	switch k {
	case KindSuccess:
		return successColor
	case KindError:
		return errorColor
	default:
		return infoColor
	}
}
