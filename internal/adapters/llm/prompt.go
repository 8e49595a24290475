package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/recheck/internal/core/ports"
)

const systemPrompt = `You review fields of work-tracking tickets.
Judge the single field you are given against the rules.
Reply with one JSON object and nothing else:
{"score": <integer 1-10>, "valid": <true|false>, "issues": [<string>...], "suggestions": [<string>...]}`

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func buildMessages(req ports.FieldRequest) []chatMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket: %s\nField: %s\n", req.TicketKey, req.Field)
	if req.ProductContext != "" {
		fmt.Fprintf(&b, "\nProduct context:\n%s\n", req.ProductContext)
	}
	if req.Rules != "" {
		fmt.Fprintf(&b, "\nRules:\n%s\n", req.Rules)
	}
	fmt.Fprintf(&b, "\nValue:\n%s\n", req.Value)
	if req.Previous != nil {
		previous, err := json.Marshal(struct {
			Score       int      `json:"score"`
			Valid       bool     `json:"valid"`
			Issues      []string `json:"issues,omitempty"`
			Suggestions []string `json:"suggestions,omitempty"`
		}{req.Previous.Score, req.Previous.Valid, req.Previous.Issues, req.Previous.Suggestions})
		if err == nil {
			fmt.Fprintf(&b, "\nPrevious judgment of an earlier version of this field:\n%s\n", previous)
		}
	}

	return []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}
