package suggest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

const (
	DefaultModel   = "gpt-4o-mini"
	requestTimeout = 30 * time.Second
)

const systemPrompt = `You triage todo items into an Eisenhower matrix. Reply with a single digit:
1 = urgent and important
2 = important, not urgent
3 = urgent, not important
4 = neither urgent nor important
Reply with the digit only.`

// OpenAI suggests priorities through the chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
	log    *zap.Logger
}

func NewOpenAI(apiKey, modelName string, log *zap.Logger) *OpenAI {
	if modelName == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	)
	return &OpenAI{client: client, model: modelName, log: log}
}

func (o *OpenAI) SuggestPriority(ctx context.Context, title, description string) (model.Priority, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(title, description)),
		},
		MaxTokens: openai.Int(8),
	})
	if err != nil {
		return 0, fmt.Errorf("suggest: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("%w: empty response", ErrUnusableReply)
	}

	reply := resp.Choices[0].Message.Content
	priority, err := parseBucket(reply)
	if err != nil {
		return 0, err
	}
	o.log.Debug("priority_suggested",
		zap.String("title", title),
		zap.Int("priority", int(priority)),
	)
	return priority, nil
}

func buildPrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Task: ")
	b.WriteString(title)
	if description != "" {
		b.WriteString("\nDetails: ")
		b.WriteString(description)
	}
	return b.String()
}

// parseBucket reads the first digit between 1 and 4 out of the reply,
// tolerating surrounding prose.
func parseBucket(reply string) (model.Priority, error) {
	for _, r := range reply {
		if r >= '1' && r <= '4' {
			return model.Priority(r - '0'), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnusableReply, reply)
}
