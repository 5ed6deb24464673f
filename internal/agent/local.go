package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/voicedesk/voicedesk/internal/model/chat"
	"github.com/voicedesk/voicedesk/internal/store"
)

// systemPrompt frames the locally hosted model as the desk assistant. It is
// a condensed version of the instruction the remote agent runs with.
const systemPrompt = `You are a capable personal desk assistant. You help the user manage their day: calendar events, email, travel, and general questions. Understand the request, answer concisely in plain text suitable for being read aloud, and ask for clarification when the request is ambiguous. Never invent calendar or email contents you were not given.`

// historyLimit bounds how many transcript entries are replayed to the model.
const historyLimit = 10

// LocalResponder answers submissions through an eino chat chain when no
// remote agent endpoint is configured. Conversation context comes from the
// shared transcript store.
type LocalResponder struct {
	conversation *store.Conversation
	chain        compose.Runnable[map[string]any, *schema.Message]
}

// NewLocalResponder compiles the prompt/model chain once at startup.
func NewLocalResponder(ctx context.Context, chatModel model.ChatModel, conversation *store.Conversation) (*LocalResponder, error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile assistant chain: %w", err)
	}

	return &LocalResponder{
		conversation: conversation,
		chain:        runnable,
	}, nil
}

// Ask runs the chain over the bounded transcript history plus the new query.
func (r *LocalResponder) Ask(ctx context.Context, message string) (string, error) {
	input := map[string]any{
		"system":  systemPrompt,
		"history": r.historyMessages(),
		"query":   message,
	}

	response, err := r.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("run assistant chain: %w", err)
	}

	log.Printf("[agent] local model answered, length=%d", len(response.Content))
	return response.Content, nil
}

func (r *LocalResponder) historyMessages() []*schema.Message {
	messages := r.conversation.Messages()

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		if msg.IsLoading {
			continue
		}
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Text))
		case chat.SenderBot:
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}

	return history
}
