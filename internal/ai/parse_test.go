package ai

import (
	"testing"

	"workon-intranet/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoice_PlainText(t *testing.T) {
	text, calls := parseChoice(`{"message":{"content":"Olá! Como posso ajudar?"}}`)

	assert.Equal(t, "Olá! Como posso ajudar?", text)
	assert.Empty(t, calls)
}

func TestParseChoice_ToolCallsList(t *testing.T) {
	raw := `{"message":{"content":null,"tool_calls":[
		{"function":{"name":"navegar_para","arguments":"{\"view\":\"settings\"}"}},
		{"function":{"name":"abrir_status_contratos","arguments":"{}"}}
	]}}`

	text, calls := parseChoice(raw)

	assert.Empty(t, text)
	require.Len(t, calls, 2)
	assert.Equal(t, "navegar_para", calls[0].Name)
	assert.JSONEq(t, `{"view":"settings"}`, calls[0].Arguments)
}

func TestParseChoice_LegacyMessageFunctionCall(t *testing.T) {
	raw := `{"message":{"function_call":{"name":"abrir_relatorio_financeiro","arguments":"{\"mes\":\"09\"}"}}}`

	_, calls := parseChoice(raw)

	require.Len(t, calls, 1)
	assert.Equal(t, "abrir_relatorio_financeiro", calls[0].Name)
}

func TestParseChoice_LegacyChoiceFunctionCall(t *testing.T) {
	raw := `{"function_call":{"name":"navegar_para","arguments":"{\"view\":\"legal\"}"},"message":{}}`

	_, calls := parseChoice(raw)

	require.Len(t, calls, 1)
	assert.Equal(t, "navegar_para", calls[0].Name)
}

func TestParseChoice_ContentVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"block list", `{"message":{"content":[{"type":"text","text":"parte um"},{"type":"text","text":" e dois"}]}}`, "parte um e dois"},
		{"string list", `{"message":{"content":["a","b"]}}`, "ab"},
		{"object with text", `{"message":{"content":{"text":"direto"}}}`, "direto"},
		{"object with parts", `{"message":{"content":{"parts":["x","y"]}}}`, "xy"},
		{"null content", `{"message":{"content":null}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _ := parseChoice(tt.raw)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestParseChoice_GarbageYieldsNothing(t *testing.T) {
	text, calls := parseChoice(`not json at all`)
	assert.Empty(t, text)
	assert.Empty(t, calls)
}

func TestIntentFromCall(t *testing.T) {
	t.Run("navigate", func(t *testing.T) {
		intent := intentFromCall(toolCall{Name: "navegar_para", Arguments: `{"view":"juridico"}`})
		require.NotNil(t, intent)
		assert.Equal(t, core.IntentNavigate, intent.Kind)
		assert.Equal(t, "juridico", intent.Target)
	})

	t.Run("financial report with month and title", func(t *testing.T) {
		intent := intentFromCall(toolCall{
			Name:      "abrir_relatorio_financeiro",
			Arguments: `{"mes":"09","titulo":"Fechamento"}`,
		})
		require.NotNil(t, intent)
		assert.Equal(t, core.IntentOpenModal, intent.Kind)
		assert.Equal(t, core.ModalTargetFinancial, intent.Target)
		assert.Equal(t, "09", intent.Filter)
		assert.Equal(t, "Fechamento", intent.Title)
	})

	t.Run("legal summary ignores arguments", func(t *testing.T) {
		intent := intentFromCall(toolCall{Name: "abrir_status_contratos", Arguments: `{"qualquer":"coisa"}`})
		require.NotNil(t, intent)
		assert.Equal(t, core.ModalTargetLegal, intent.Target)
	})

	t.Run("empty arguments", func(t *testing.T) {
		intent := intentFromCall(toolCall{Name: "abrir_relatorio_financeiro"})
		require.NotNil(t, intent)
		assert.Equal(t, "", intent.Filter)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		assert.Nil(t, intentFromCall(toolCall{Name: "navegar_para", Arguments: `{"view":`}))
	})

	t.Run("missing view", func(t *testing.T) {
		assert.Nil(t, intentFromCall(toolCall{Name: "navegar_para", Arguments: `{}`}))
	})

	t.Run("unknown tool", func(t *testing.T) {
		assert.Nil(t, intentFromCall(toolCall{Name: "apagar_tudo", Arguments: `{}`}))
	})
}

// The full path from a raw completion choice to workspace state: the month
// filter arrives as "09" and lands in the modal as "Setembro".
func TestChoiceToModalContent(t *testing.T) {
	raw := `{"message":{"content":null,"tool_calls":[{"function":{
		"name":"abrir_relatorio_financeiro",
		"arguments":"{\"mes\":\"09\",\"titulo\":\"Relatório de Setembro\"}"}}]}}`

	_, calls := parseChoice(raw)
	require.Len(t, calls, 1)
	intent := intentFromCall(calls[0])
	require.NotNil(t, intent)

	ws := core.NewWorkspace(core.NewSession("gestor@workon.com", "Gestor", core.RoleManager))
	ws.Dispatch(intent)

	st := ws.State()
	require.NotNil(t, st.Modal)
	assert.Equal(t, core.ReportFinancial, st.Modal.Kind)
	assert.Equal(t, "Setembro", st.Modal.Month)
	assert.Equal(t, "Relatório de Setembro", st.Modal.Title)
}
