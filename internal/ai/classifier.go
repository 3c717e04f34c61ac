package ai

import (
	"context"
	"fmt"
	"time"

	"workon-intranet/internal/core"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Message is one turn of chat history sent to the classifier.
type Message struct {
	Role string // "user" or "assistant"
	Text string
}

// Reply is the classifier's normalized output: free text for the user and,
// when the model invoked a UI tool, the resulting intent. Intent is nil
// whenever no usable tool call came back — the caller shows Text and
// touches no state.
type Reply struct {
	Text   string
	Intent *core.Intent
}

// Classifier maps conversation history to UI intents through a remote
// completion service.
type Classifier struct {
	client *openai.Client
	model  shared.ChatModel
}

// NewClassifier builds a Classifier for the given API key.
func NewClassifier(apiKey string) *Classifier {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Classifier{client: &client, model: shared.ChatModelGPT4oMini}
}

const systemInstruction = `Você é o assistente inteligente do sistema 'Work On'.
Você tem controle sobre a interface do usuário.
Sempre que o usuário pedir para ver dados ou ir para uma tela, USE AS FERRAMENTAS DISPONÍVEIS.
Se a pergunta for genérica (ex: "olá"), responda educadamente.
Hoje é %s.`

const fallbackReply = "Desculpe, não consegui entender. Pode reformular?"

// Classify sends the full history plus the fixed system instruction to the
// completion service, declaring the three UI tools. Only the first tool
// call in the response is honored; unparseable arguments and unknown tool
// names degrade to "no intent" rather than an error. A transport failure
// is returned as-is so the caller can surface a retryable message without
// mutating any state.
func (c *Classifier) Classify(ctx context.Context, history []Message) (*Reply, error) {
	tools, err := uiTools()
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(
		fmt.Sprintf(systemInstruction, time.Now().Format("02/01/2006"))))
	for _, m := range history {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Text))
		} else {
			messages = append(messages, openai.UserMessage(m.Text))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	text, calls := parseChoice(resp.Choices[0].RawJSON())
	reply := &Reply{Text: text}
	if len(calls) > 0 {
		reply.Intent = intentFromCall(calls[0])
	}
	if reply.Text == "" && reply.Intent == nil {
		reply.Text = fallbackReply
	}
	return reply, nil
}
