package gen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ChatTurn is one prior exchange in a conversation. Role is "user" or
// "model". The backend holds no session state, so the full history is
// replayed on every call.
type ChatTurn struct {
	Role string
	Text string
}

// turnRole maps a stored turn role onto the wire role. Anything that is
// not the model counts as the user.
func turnRole(r string) genai.Role {
	if r == "model" {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Chat answers a follow-up question about the current lookup. contextStr
// carries the lookup's subject, definition and story so the model can ground
// its reply.
func (c *Client) Chat(ctx context.Context, message, contextStr string, history []ChatTurn) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, turnRole(turn.Role)))
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.8),
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(
			"You are a friendly language tutor. The learner is studying this flashcard:\n%s\n"+
				"Answer concisely and stay on topic.", contextStr), genai.RoleUser),
	}

	chat, err := c.genai.Chats.Create(ctx, c.config.TextModel, cfg, contents)
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	resp, err := c.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return chat.SendMessage(ctx, genai.Part{Text: message})
	})
	if err != nil {
		return "", fmt.Errorf("chat call failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", fmt.Errorf("no chat reply returned")
	}
	return reply, nil
}
