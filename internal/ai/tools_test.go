package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUITools(t *testing.T) {
	tools, err := uiTools()
	require.NoError(t, err)
	require.Len(t, tools, 3)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Function.Name)
	}
	assert.Equal(t, []string{"navegar_para", "abrir_relatorio_financeiro", "abrir_status_contratos"}, names)
}

func TestNavigateSchema(t *testing.T) {
	schema, err := reflectSchema(navigateParams{})
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	view, ok := props["view"].(map[string]any)
	require.True(t, ok)

	enum, ok := view["enum"].([]any)
	require.True(t, ok)
	assert.Contains(t, enum, "legal")
	assert.Contains(t, enum, "financeiro")
	assert.NotContains(t, enum, "client-center", "client center is reached by menu, not by chat")
}
