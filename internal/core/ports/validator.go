package ports

import (
	"context"

	"go.trai.ch/recheck/internal/core/domain"
)

// FieldRequest carries everything the field validator needs to judge one field.
type FieldRequest struct {
	TicketKey      string
	Field          domain.Field
	Value          string
	Rules          string
	ProductContext string
	// Previous is the last stored judgment for this field, if any. It is passed through
	// untouched so the validator can recognise improvements or regressions.
	Previous *domain.FieldResult
}

// FieldValidator judges a single ticket field against the configured rules.
//
//go:generate go run go.uber.org/mock/mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type FieldValidator interface {
	// ValidateField evaluates one field. An error, or a result that cannot be
	// interpreted, degrades that field only.
	ValidateField(ctx context.Context, req FieldRequest) (domain.FieldResult, error)

	// Ready reports whether the validator is configured well enough to make calls.
	Ready() error
}
