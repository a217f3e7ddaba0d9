package ai

import (
	"context"
	"fmt"
	"strings"
)

// Fallbacks used when the model is unavailable or returns garbage.
var (
	fallbackPrompts = []string{
		"What is one thing you're grateful for today?",
		"Describe a moment today when you felt at peace.",
		"What has been weighing on your mind lately?",
	}
	fallbackTags = []string{"reflection"}
)

// Persona summarizes a user's recent activity into a short profile the chat
// companion uses as context.
func (c *Client) Persona(ctx context.Context, recentMoods, recentJournalTitles []string) (string, error) {
	prompt := fmt.Sprintf(`Based on this user's recent activity, write a 3-sentence summary of their emotional state and what kind of support they might need. Write in third person. Do not include any preamble.

Recent moods: %s
Recent journal titles: %s`,
		strings.Join(recentMoods, ", "),
		strings.Join(recentJournalTitles, "; "))

	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// JournalPrompts suggests three writing prompts matched to the user's latest
// mood. Falls back to static prompts on any failure.
func (c *Client) JournalPrompts(ctx context.Context, mood string) []string {
	prompt := fmt.Sprintf(`Suggest 3 short journal writing prompts for someone who is feeling "%s". Respond with only a JSON array of strings.`, mood)
	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return fallbackPrompts
	}
	if prompts := ParseStringArray(out); prompts != nil {
		if len(prompts) > 3 {
			prompts = prompts[:3]
		}
		return prompts
	}
	return fallbackPrompts
}

// JournalTags derives up to 5 topical tags from an entry's content.
func (c *Client) JournalTags(ctx context.Context, content string) []string {
	if len(content) > 4000 {
		content = content[:4000]
	}
	prompt := fmt.Sprintf(`Extract up to 5 short lowercase topic tags from this journal entry. Respond with only a JSON array of strings.

Entry:
%s`, content)
	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return fallbackTags
	}
	if tags := ParseStringArray(out); tags != nil {
		if len(tags) > 5 {
			tags = tags[:5]
		}
		return tags
	}
	return fallbackTags
}

// ChatTitle produces a short title for a chat session from its first message.
func (c *Client) ChatTitle(ctx context.Context, firstMessage string) string {
	if len(firstMessage) > 500 {
		firstMessage = firstMessage[:500]
	}
	prompt := fmt.Sprintf(`Write a title of at most 6 words for a conversation that starts with this message. Respond with only the title, no quotes.

Message: %s`, firstMessage)
	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return fallbackTitle(firstMessage)
	}
	title := strings.Trim(strings.TrimSpace(out), `"`)
	if title == "" {
		return fallbackTitle(firstMessage)
	}
	if len(title) > 80 {
		title = title[:80]
	}
	return title
}

func fallbackTitle(msg string) string {
	msg = strings.TrimSpace(msg)
	if len(msg) > 40 {
		return msg[:40] + "..."
	}
	if msg == "" {
		return "New conversation"
	}
	return msg
}

// WeeklyInsights is the structured journal summary for the past week.
type WeeklyInsights struct {
	Summary   string   `json:"summary"`
	MoodTrend string   `json:"mood_trend"`
	KeyTopics []string `json:"key_topics"`
	Advice    string   `json:"advice"`
}

// WeeklyJournalInsights summarizes a week of journal entries into structured
// insights.
func (c *Client) WeeklyJournalInsights(ctx context.Context, entries []string) (*WeeklyInsights, error) {
	joined := strings.Join(entries, "\n---\n")
	if len(joined) > 12000 {
		joined = joined[:12000]
	}
	prompt := fmt.Sprintf(`Analyze these journal entries from the past week. Respond with only a JSON object with keys "summary" (2-3 sentences), "mood_trend" (one of "improving", "stable", "declining"), "key_topics" (array of strings), and "advice" (one gentle suggestion).

Entries:
%s`, joined)

	out, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var insights WeeklyInsights
	if err := ParseJSONObject(out, &insights); err != nil {
		return nil, fmt.Errorf("parse weekly insights: %w", err)
	}
	return &insights, nil
}
