// Package chat holds a conversation about the daily organiser.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ambrogio-dev/ambrogio/internal/dates"
	"github.com/ambrogio-dev/ambrogio/internal/llm"
)

// Completer produces the next assistant reply for a conversation.
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

const promptTemplate = `You are Ambrogio, a personal assistant that helps the user understand their schedule and tasks.

You have access to the user's daily organiser. The format is:
- Dates are marked with ` + "`# YYYY-MM-DD`" + `
- Scheduled items: ` + "`**HH:MM** description`" + `
- Open tasks are marked with [TODO]
- Completed tasks are marked with [DONE]

Today's date is: %s

---
%s
---

Answer questions about the schedule concisely. When listing items, use bullet points.
If asked about "tomorrow", calculate the date based on today.
If asked about "this week", consider the 7 days starting from today.`

// SystemPrompt builds the instructions sent ahead of every exchange.
func SystemPrompt(today string, organiser string) string {
	return fmt.Sprintf(promptTemplate, today, organiser)
}

// Manager keeps the history of one conversation.
type Manager struct {
	client       Completer
	systemPrompt string
	history      []llm.Message
}

// NewManager starts a conversation grounded on the organiser content.
func NewManager(client Completer, organiser string, now time.Time) *Manager {
	return &Manager{
		client:       client,
		systemPrompt: SystemPrompt(dates.FormatDate(now), organiser),
	}
}

// Send asks the model and returns its reply. The exchange is added to the
// history only when the call succeeds.
func (m *Manager) Send(ctx context.Context, input string) (string, error) {
	messages := make([]llm.Message, 0, len(m.history)+2)
	messages = append(messages, llm.System(m.systemPrompt))
	messages = append(messages, m.history...)
	messages = append(messages, llm.User(input))

	reply, err := m.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	m.history = append(m.history, llm.User(input), llm.Assistant(reply))
	return reply, nil
}

// History returns the completed exchanges.
func (m *Manager) History() []llm.Message {
	return append([]llm.Message(nil), m.history...)
}

// IsExit reports whether input ends the REPL.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
