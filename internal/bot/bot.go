// Package bot announces auction progress to a Discord channel.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/jensholdgaard/fantadraft/internal/config"
	"github.com/jensholdgaard/fantadraft/internal/event"
)

// Bot wraps the Discord session and posts a message per auction event.
type Bot struct {
	session *discordgo.Session
	cfg     config.DiscordConfig
	logger  *slog.Logger
}

// New creates a new Bot instance.
func New(cfg config.DiscordConfig, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return &Bot{session: session, cfg: cfg, logger: logger}, nil
}

// Start opens the Discord connection.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.InfoContext(ctx, "bot is ready", slog.String("user", s.State.User.Username))
	})
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord session: %w", err)
	}
	return nil
}

// Stop gracefully closes the Discord connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// Announce subscribes the bot to an auction's event bus. Posting is best
// effort and never blocks the turn loop for long.
func (b *Bot) Announce(bus *event.Bus) {
	bus.Subscribe(func(e event.Event) {
		text := format(e)
		if text == "" {
			return
		}
		if _, err := b.session.ChannelMessageSend(b.cfg.ChannelID, text); err != nil {
			b.logger.Error("failed to announce event",
				slog.String("type", string(e.Type)),
				slog.Any("error", err),
			)
		}
	})
}

// format renders an event as a channel message. Unknown or chatty event
// types produce no message.
func format(e event.Event) string {
	switch e.Type {
	case event.AuctionStarted:
		var d event.AuctionStartedData
		if json.Unmarshal(e.Data, &d) != nil {
			return ""
		}
		return fmt.Sprintf("🏁 Auction **%s** started with %d teams.", d.Name, d.Teams)
	case event.TurnStarted:
		var d event.TurnStartedData
		if json.Unmarshal(e.Data, &d) != nil {
			return ""
		}
		return fmt.Sprintf("Turn %d: **%s** is calling.", d.TurnNumber, d.CallerName)
	case event.PlayerCalled:
		var d event.PlayerCalledData
		if json.Unmarshal(e.Data, &d) != nil {
			return ""
		}
		return fmt.Sprintf("📣 **%s** (%s) is up for auction.", d.PlayerName, d.Role)
	case event.PlayerAssigned:
		var d event.PlayerAssignedData
		if json.Unmarshal(e.Data, &d) != nil {
			return ""
		}
		return fmt.Sprintf("✅ **%s** goes to **%s** for %d.", d.PlayerName, d.TeamName, d.Amount)
	case event.AuctionFinished:
		var d event.AuctionFinishedData
		if json.Unmarshal(e.Data, &d) != nil {
			return ""
		}
		return fmt.Sprintf("🏆 Auction finished after %d turns (%s).", d.Turns, d.Reason)
	default:
		// Individual bids and joins are too noisy for a channel.
		return ""
	}
}
