// internal/notify/slack.go
//
// Slack notifications for finished games and daily reminders.
// The chat API is an external collaborator: this package only builds
// the Block Kit payload and fires it off; delivery and retry are the
// collaborator's concern. Failures are logged, never propagated to
// game flow.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultAPIURL = "https://slack.com/api/chat.postMessage"

// GameSummary describes one finished game for notification purposes.
type GameSummary struct {
	Date      string
	Word      string
	Attempts  int
	Won       bool
	Winner    string   // display name; empty on a loss
	Players   []string // everyone who contributed letters
	AboutWord string   // optional collaborator-generated flavor text
}

// Client posts messages to a single Slack channel.
// A Client with an empty token or channel is a no-op, so callers can
// wire it unconditionally.
type Client struct {
	token   string
	channel string
	apiURL  string
	http    *http.Client
}

// New constructs a Client from bot token and channel id.
func New(token, channel string) *Client {
	return &Client{
		token:   token,
		channel: channel,
		apiURL:  defaultAPIURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) enabled() bool {
	return c != nil && c.token != "" && c.channel != ""
}

// GameFinished announces a win or loss.
func (c *Client) GameFinished(ctx context.Context, s GameSummary) {
	if !c.enabled() {
		return
	}
	var fallback string
	if s.Won {
		fallback = fmt.Sprintf("Wordle with Friends for %s was solved in %d attempts!", s.Date, s.Attempts)
	} else {
		fallback = fmt.Sprintf("Wordle with Friends for %s wasn't solved. The word was %q.", s.Date, s.Word)
	}
	c.post(ctx, fallback, GameBlocks(s))
}

// Reminder nudges the channel when today's game is still unsolved.
func (c *Client) Reminder(ctx context.Context, date string, participants []string) {
	if !c.enabled() {
		return
	}
	text := fmt.Sprintf("Today's Wordle with Friends (%s) is still unsolved!", date)
	blocks := []block{
		section(text),
	}
	if len(participants) > 0 {
		blocks = append(blocks, section("*Already on the case:* "+strings.Join(participants, ", ")))
	} else {
		blocks = append(blocks, section("No one has played yet today. Be the first!"))
	}
	c.post(ctx, text, blocks)
}

// post fires the chat.postMessage call and logs the outcome.
func (c *Client) post(ctx context.Context, fallback string, blocks []block) {
	body, err := json.Marshal(map[string]any{
		"channel": c.channel,
		"text":    fallback,
		"blocks":  blocks,
	})
	if err != nil {
		log.Error().Err(err).Msg("slack: encode payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("slack: build request")
		return
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("slack: post message")
		return
	}
	defer res.Body.Close()

	var ack struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&ack); err != nil || !ack.OK {
		log.Warn().Str("slackError", ack.Error).Int("status", res.StatusCode).Msg("slack: message rejected")
		return
	}
	log.Info().Str("channel", c.channel).Msg("slack: message sent")
}

// ----------------------------- blocks --------------------------------

// block is one Block Kit element. Kept as a loose map: the payload is
// write-only from our side and the chat API owns the schema.
type block map[string]any

func header(text string) block {
	return block{
		"type": "header",
		"text": map[string]any{"type": "plain_text", "text": text, "emoji": true},
	}
}

func section(md string) block {
	return block{
		"type": "section",
		"text": map[string]any{"type": "mrkdwn", "text": md},
	}
}

func fieldsSection(fields ...string) block {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, map[string]any{"type": "mrkdwn", "text": f})
	}
	return block{"type": "section", "fields": out}
}

func divider() block {
	return block{"type": "divider"}
}

// GameBlocks builds the Block Kit layout for a finished game.
// Exported so the payload shape can be asserted in tests.
func GameBlocks(s GameSummary) []block {
	var blocks []block
	if s.Won {
		blocks = append(blocks,
			header(fmt.Sprintf("🎉 Wordle with Friends for %s was solved! 🎉", s.Date)),
			fieldsSection(
				fmt.Sprintf("*Word:*\n%s", s.Word),
				fmt.Sprintf("*Attempts:*\n%d", s.Attempts),
			),
		)
		winner := s.Winner
		if winner == "" {
			winner = "Someone"
		}
		blocks = append(blocks, section("*Winner:* "+winner))

		var others []string
		for _, p := range s.Players {
			if p != s.Winner {
				others = append(others, p)
			}
		}
		if len(others) > 0 {
			blocks = append(blocks, section("*Participants:* "+strings.Join(others, ", ")))
		}
	} else {
		blocks = append(blocks,
			header(fmt.Sprintf("😥 Wordle with Friends for %s wasn't solved 😥", s.Date)),
			section("*The word was:* "+s.Word),
		)
		if len(s.Players) > 0 {
			blocks = append(blocks, section("*Played by:* "+strings.Join(s.Players, ", ")))
		} else {
			blocks = append(blocks, section("No one participated today."))
		}
		blocks = append(blocks, section("Better luck next time!"))
	}

	if s.AboutWord != "" {
		blocks = append(blocks, divider(), section("💡 *About the word:* "+s.AboutWord))
	}
	return blocks
}
