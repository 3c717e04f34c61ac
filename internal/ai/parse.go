package ai

import (
	"encoding/json"
	"strings"

	"workon-intranet/internal/core"
)

// toolCall is a transport-independent tool invocation.
type toolCall struct {
	Name      string
	Arguments string // raw JSON object
}

type rawFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type rawToolCall struct {
	Function rawFunctionCall `json:"function"`
}

type rawMessage struct {
	Content      json.RawMessage  `json:"content"`
	ToolCalls    []rawToolCall    `json:"tool_calls"`
	FunctionCall *rawFunctionCall `json:"function_call"`
}

type rawChoice struct {
	Message      rawMessage       `json:"message"`
	FunctionCall *rawFunctionCall `json:"function_call"`
}

// parseChoice extracts the assistant text and tool calls from the raw JSON
// of one completion choice. Transports disagree on where a tool call lives
// — a tool_calls list on the message, a legacy function_call on the
// message, or a legacy function_call on the choice itself — and on how
// text content is encoded. All variants normalize to the same pair; a
// choice that fits none of them yields empty results, never an error.
func parseChoice(raw string) (string, []toolCall) {
	var choice rawChoice
	if err := json.Unmarshal([]byte(raw), &choice); err != nil {
		return "", nil
	}

	text := contentText(choice.Message.Content)

	var calls []toolCall
	switch {
	case len(choice.Message.ToolCalls) > 0:
		for _, tc := range choice.Message.ToolCalls {
			if tc.Function.Name != "" {
				calls = append(calls, toolCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments})
			}
		}
	case choice.Message.FunctionCall != nil && choice.Message.FunctionCall.Name != "":
		calls = append(calls, toolCall{
			Name:      choice.Message.FunctionCall.Name,
			Arguments: choice.Message.FunctionCall.Arguments,
		})
	case choice.FunctionCall != nil && choice.FunctionCall.Name != "":
		calls = append(calls, toolCall{
			Name:      choice.FunctionCall.Name,
			Arguments: choice.FunctionCall.Arguments,
		})
	}

	return text, calls
}

// contentText flattens the content field, which may arrive as a plain
// string, a list of text blocks, or an object with text/parts fields.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var sb strings.Builder
		for _, b := range blocks {
			var bs string
			if err := json.Unmarshal(b, &bs); err == nil {
				sb.WriteString(bs)
				continue
			}
			var obj struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(b, &obj); err == nil {
				sb.WriteString(obj.Text)
			}
		}
		return sb.String()
	}

	var obj struct {
		Text  string   `json:"text"`
		Parts []string `json:"parts"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Text != "" {
			return obj.Text
		}
		return strings.Join(obj.Parts, "")
	}

	return ""
}

// intentFromCall converts a tool call into a validated intent. Unknown
// tool names and malformed argument JSON both produce nil.
func intentFromCall(call toolCall) *core.Intent {
	args := map[string]any{}
	if strings.TrimSpace(call.Arguments) != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil
		}
	}

	str := func(key string) string {
		v, _ := args[key].(string)
		return v
	}

	switch call.Name {
	case toolNavigate:
		return core.NewNavigateIntent(str("view"))
	case toolFinancialReport:
		return core.NewOpenModalIntent(core.ModalTargetFinancial, str("mes"), str("titulo"))
	case toolLegalSummary:
		return core.NewOpenModalIntent(core.ModalTargetLegal, "", "")
	default:
		return nil
	}
}
