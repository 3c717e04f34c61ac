package ai

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// The three UI tools the classifier may call. Names are part of the
// conversation contract and must not change.
const (
	toolNavigate        = "navegar_para"
	toolFinancialReport = "abrir_relatorio_financeiro"
	toolLegalSummary    = "abrir_status_contratos"
)

type navigateParams struct {
	View string `json:"view" jsonschema:"enum=dashboard,enum=financeiro,enum=vendas,enum=rh,enum=ti,enum=operacoes,enum=legal,enum=admin,description=O ID da visualização para onde navegar."`
}

type financialReportParams struct {
	Mes    string `json:"mes" jsonschema:"description=O número do mês (01 a 12) ou nome (janeiro etc.) para filtrar."`
	Titulo string `json:"titulo,omitempty" jsonschema:"description=Um título descritivo para o relatório."`
}

type legalSummaryParams struct{}

// reflectSchema generates an inline JSON-schema map from a Go struct,
// with additionalProperties disabled as the completion API expects.
func reflectSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}

// uiTools declares the fixed tool set sent with every classification call.
func uiTools() ([]openai.ChatCompletionToolParam, error) {
	defs := []struct {
		name        string
		description string
		params      any
	}{
		{toolNavigate, "Navega para uma área específica do sistema (Dashboard, Financeiro, Jurídico, etc).", navigateParams{}},
		{toolFinancialReport, "Abre um modal com detalhes financeiros de um mês específico.", financialReportParams{}},
		{toolLegalSummary, "Abre um painel rápido com indicadores de contratos, vencimentos e processos jurídicos.", legalSummaryParams{}},
	}

	out := make([]openai.ChatCompletionToolParam, 0, len(defs))
	for _, d := range defs {
		schema, err := reflectSchema(d.params)
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", d.name, err)
		}
		out = append(out, openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        d.name,
				Description: openai.String(d.description),
				Parameters:  shared.FunctionParameters(schema),
			},
		})
	}
	return out, nil
}
