// Package llm implements the field validator against an OpenAI-compatible chat completions API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	completionsPath = "/chat/completions"
	maxErrorBody    = 4096
)

// Validator implements ports.FieldValidator by asking a chat model to judge one field.
type Validator struct {
	endpoint  string
	model     string
	apiKeyEnv string
	apiKey    string
	client    *http.Client
}

// NewValidator creates a Validator for cfg. getenv resolves the API key variable.
func NewValidator(cfg domain.ValidatorConfig, getenv func(string) string) *Validator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultValidatorTimeout
	}
	return &Validator{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		model:     cfg.Model,
		apiKeyEnv: cfg.APIKeyEnv,
		apiKey:    strings.TrimSpace(getenv(cfg.APIKeyEnv)),
		client:    &http.Client{Timeout: timeout},
	}
}

// Ready reports whether an API key is available.
func (v *Validator) Ready() error {
	if v.apiKey == "" {
		return zerr.With(domain.ErrMissingAPIKey, "env", v.apiKeyEnv)
	}
	return nil
}

// ValidateField asks the model to judge req.Field and interprets its JSON reply.
func (v *Validator) ValidateField(ctx context.Context, req ports.FieldRequest) (domain.FieldResult, error) {
	if err := v.Ready(); err != nil {
		return domain.FieldResult{}, err
	}

	body, err := json.Marshal(chatRequest{
		Model:          v.model,
		Messages:       buildMessages(req),
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return domain.FieldResult{}, zerr.Wrap(err, domain.ErrValidatorRequestFailed.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+completionsPath, bytes.NewReader(body))
	if err != nil {
		return domain.FieldResult{}, zerr.Wrap(err, domain.ErrValidatorRequestFailed.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.client.Do(httpReq)
	if err != nil {
		return domain.FieldResult{}, zerr.Wrap(err, domain.ErrValidatorRequestFailed.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.FieldResult{}, readAPIError(resp)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.FieldResult{}, zerr.Wrap(err, domain.ErrValidatorReplyInvalid.Error())
	}
	if len(completion.Choices) == 0 {
		return domain.FieldResult{}, zerr.With(domain.ErrValidatorReplyInvalid, "reason", "no choices")
	}

	verdict, err := parseVerdict(completion.Choices[0].Message.Content)
	if err != nil {
		return domain.FieldResult{}, err
	}

	return domain.FieldResult{
		Field:       req.Field,
		Score:       *verdict.Score,
		Valid:       verdict.Valid,
		Issues:      verdict.Issues,
		Suggestions: verdict.Suggestions,
		EvaluatedAt: time.Now().UTC(),
	}, nil
}

// verdict is the JSON object the model is instructed to reply with.
type verdict struct {
	Score       *int     `json:"score"`
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// parseVerdict extracts the verdict object from the reply content.
// Markdown code fences and text around the object are tolerated.
func parseVerdict(content string) (verdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return verdict{}, zerr.With(domain.ErrValidatorReplyInvalid, "reason", "no JSON object in reply")
	}

	var v verdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &v); err != nil {
		return verdict{}, zerr.Wrap(err, domain.ErrValidatorReplyInvalid.Error())
	}
	if v.Score == nil {
		return verdict{}, zerr.With(domain.ErrValidatorReplyInvalid, "reason", "missing score")
	}
	if *v.Score < domain.MinScore || *v.Score > domain.MaxScore {
		return verdict{}, zerr.With(zerr.With(domain.ErrValidatorReplyInvalid, "reason", "score out of range"), "score", *v.Score)
	}
	return v, nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	err := zerr.With(domain.ErrValidatorRequestFailed, "status", resp.StatusCode)
	return zerr.With(err, "message", message)
}
