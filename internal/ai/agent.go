package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	modelName    = "gemini-2.0-flash-001"
	maxToolTurns = 5
)

// Agent answers admin questions with Gemini, calling Toolbox functions as the
// model requests them.
type Agent struct {
	apiKey  string
	toolbox *Toolbox
	logger  *zap.Logger
}

func NewAgent(apiKey string, toolbox *Toolbox, logger *zap.Logger) *Agent {
	return &Agent{apiKey: apiKey, toolbox: toolbox, logger: logger.Named("ai")}
}

func systemPrompt(today string) string {
	return fmt.Sprintf(`Today is %s. You are the sales assistant of a small campus merch shop.

RULES:
1. SALES: for revenue or order counts in a period, call 'get_sales_report'.
2. PROFIT: for profit, cost or margin questions, call 'get_profit_summary'.
3. COSTS: to change what an item costs, call 'list_item_costs' to find its key,
   then 'set_item_cost'. Never ask the user for the key.
4. Amounts are in Philippine pesos (PHP).`, today)
}

// Ask runs one question through the model, executing tool calls until the
// model answers in text.
func (a *Agent) Ask(ctx context.Context, message string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("ai: new client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt(time.Now().Format(dateLayout))))
	model.Tools = []*genai.Tool{{FunctionDeclarations: a.toolbox.Declarations()}}

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("ai: send: %w", err)
	}

	for turn := 0; turn < maxToolTurns; turn++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return textOf(resp), nil
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			result, err := a.toolbox.Call(ctx, call.Name, call.Args)
			if err != nil {
				a.logger.Warn("tool failed", zap.String("tool", call.Name), zap.Error(err))
				result = map[string]any{"error": err.Error()}
			}
			parts = append(parts, genai.FunctionResponse{Name: call.Name, Response: result})
		}

		resp, err = session.SendMessage(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("ai: send tool results: %w", err)
		}
	}

	return textOf(resp), nil
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func textOf(resp *genai.GenerateContentResponse) string {
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt)
			}
		}
	}
	return "I completed the action."
}
