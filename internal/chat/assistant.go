// Package chat implements the AI consultant widget backend. The session is
// an explicitly constructed, explicitly owned object: callers create it,
// hold it, and reset it, rather than sharing ambient package-level state.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is the hosted model the assistant uses when none is
// configured.
const DefaultModel = "gemini-2.0-flash"

// systemInstruction is the consultant persona shown to prospective clients.
const systemInstruction = `You are the virtual technical consultant for a software agency.
The agency builds web applications, mobile applications, and automated
reporting / business-intelligence tooling.

Your job:
- Greet prospective clients warmly and professionally.
- Help them articulate what they need (web, mobile, or reporting).
- Suggest a rough fitting tech stack.
- Steer seriously interested visitors toward the contact form at the end of
  the conversation.
- Never quote exact prices; pricing depends on feature complexity.

Keep replies short (at most three short paragraphs) so they read well in a
chat widget.`

// fallbackReply is returned when the model call fails, so the widget always
// has something to show.
const fallbackReply = "Sorry, something went wrong while processing your message. Please reach out to us directly."

// Assistant owns one conversation with the hosted model.
type Assistant struct {
	client *genai.Client
	model  string

	mu      sync.Mutex
	session *genai.Chat
}

// New creates an assistant talking to the hosted model identified by model
// (DefaultModel when empty), authorized by apiKey.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("chat API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat client: %w", err)
	}

	return &Assistant{client: client, model: model}, nil
}

func (a *Assistant) ensureSession(ctx context.Context) (*genai.Chat, error) {
	if a.session != nil {
		return a.session, nil
	}
	session, err := a.client.Chats.Create(ctx, a.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	a.session = session
	return session, nil
}

// SendMessage sends one user message within the owned session and returns
// the model's reply. On a model failure the fallback reply is returned with
// a nil error: the widget degrades, it does not break.
func (a *Assistant) SendMessage(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	session, err := a.ensureSession(ctx)
	if err != nil {
		return "", err
	}

	resp, err := session.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		slog.Warn("Chat model call failed", "error", err)
		return fallbackReply, nil
	}

	text := resp.Text()
	if text == "" {
		return fallbackReply, nil
	}
	return text, nil
}

// Reset drops the conversation history. The next message starts a fresh
// session.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
}
