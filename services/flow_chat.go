package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Coderanger08/FinGenie/models"
)

// ============================================================================
// FINANCIAL-ADVICE CHAT FLOW
// Free-text question with optional financial context in; a narrative answer,
// optionally with chart data, out.
// ============================================================================

const chatSystemPrompt = `You are FinGenie, a dedicated AI Financial Agent. Your primary role is to guide users in making informed financial decisions by providing personalized advice, clarifying complex topics, and helping them understand their financial situation.

Your goal: act as a financial decision-making partner.
- Clarify and simplify: break down complex financial concepts into easy-to-understand explanations.
- Actionable guidance: provide specific, actionable steps the user can take.
- Personalized recommendations: leverage the financial context, when provided, to offer advice directly relevant to the user's situation.
- Interactive support: if a question is vague, politely ask clarifying questions.
- Decision support: help users weigh pros and cons of different financial choices.

Visualizations:
If the user's question explicitly asks for a visual representation (e.g., "show me my spending breakdown chart") OR the financial context provides clear, relevant data that a chart would significantly enhance, you MAY include chart data in the 'chart' field.
- For "spending breakdown by category", use a 'pie' chart with data objects like {"name": "CategoryName", "value": amountSpent} and title "Spending Breakdown".
- For "income vs expenses", use a 'bar' chart with data objects like {"name": "Total Income", "value": total} and title "Income vs. Expenses".
- Only generate chart data if the financial context has the necessary summary figures. Do not invent data. Omit the 'chart' field entirely when no context data supports one.
- Each data object must have 'name' (string) and 'value' (number); 'fill' (hex color string) is optional, as are 'xAxisLabel' and 'yAxisLabel' for bar charts.

Always provide a textual 'answer'. The 'chart' is optional and supplementary.

Respond ONLY with a JSON object (no markdown, no backticks) with this exact shape:
{
  "answer": "string",
  "chart": {"type": "pie", "title": "string", "data": [{"name": "string", "value": 123}]}
}
Your tone should be supportive, empathetic, and professional.`

func renderChatPrompt(input models.ChatInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User's Question: %s\n", input.Question)
	if input.FinancialContext != "" {
		fmt.Fprintf(&b, "\nUser's Financial Context:\n%s\n", input.FinancialContext)
		b.WriteString("\nThis context includes transaction history, spending patterns, and budget details. Use this information to tailor your advice precisely to the user's circumstances.\n")
		b.WriteString("\nWhen analyzing financial context, focus on:\n")
		b.WriteString("- Transaction patterns: trends, significant changes, or anomalies in income and expenses.\n")
		b.WriteString("- Spending habits: categories where spending is high or could be optimized.\n")
		b.WriteString("- Budget adherence: actual spending versus any stated budget goals.\n")
		b.WriteString("- Income streams: the regularity and sources of income.\n")
	}
	return b.String()
}

func chatFallback(_ models.ChatInput) models.ChatOutput {
	return models.ChatOutput{
		Answer: "I'm sorry, I couldn't process that request fully. Please try again.",
	}
}

var chatSpec = flowSpec[models.ChatInput, models.ChatOutput]{
	name:         "chat",
	systemPrompt: chatSystemPrompt,
	render:       renderChatPrompt,
	fallback:     chatFallback,
}

// Chat answers a financial question, optionally with chart data.
func (inv *FlowInvoker) Chat(ctx context.Context, input models.ChatInput) (FlowResult[models.ChatOutput], error) {
	return invokeFlow(ctx, inv, chatSpec, input)
}
