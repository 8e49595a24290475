package domain

import "go.trai.ch/zerr"

// Rounding selects how the mean field score is turned into an integer.
type Rounding string

const (
	// RoundHalfUp rounds the mean to the nearest integer, halves upwards.
	RoundHalfUp Rounding = "half-up"
	// RoundFloor truncates the mean towards zero.
	RoundFloor Rounding = "floor"
)

// DefaultThreshold is the minimum aggregate score for a ticket to be valid.
const DefaultThreshold = 7

// ParseRounding converts a policy name into a Rounding. The empty name selects RoundHalfUp.
func ParseRounding(name string) (Rounding, error) {
	switch Rounding(name) {
	case "", RoundHalfUp:
		return RoundHalfUp, nil
	case RoundFloor:
		return RoundFloor, nil
	default:
		return "", zerr.With(ErrInvalidRounding, "rounding", name)
	}
}

// ScorePolicy decides the aggregate score and validity of a ticket.
type ScorePolicy struct {
	Threshold int
	Rounding  Rounding
}

// DefaultScorePolicy returns the half-up, threshold 7 policy.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{Threshold: DefaultThreshold, Rounding: RoundHalfUp}
}

// Validate checks that the policy is usable.
func (p ScorePolicy) Validate() error {
	if p.Threshold < MinScore || p.Threshold > MaxScore {
		return zerr.With(ErrInvalidThreshold, "threshold", p.Threshold)
	}
	if _, err := ParseRounding(string(p.Rounding)); err != nil {
		return err
	}
	return nil
}

// Aggregate computes the ticket score and validity over the merged field results.
// A ticket is valid iff every field result is valid and the score meets the threshold.
func (p ScorePolicy) Aggregate(results []FieldResult) (score int, valid bool, err error) {
	if len(results) == 0 {
		return 0, false, ErrNoFieldResults
	}

	sum := 0
	allValid := true
	for _, r := range results {
		if r.Score < DegradedScore || r.Score > MaxScore {
			return 0, false, zerr.With(zerr.With(ErrScoreOutOfRange, "field", r.Field.String()), "score", r.Score)
		}
		sum += r.Score
		allValid = allValid && r.Valid
	}

	n := len(results)
	switch p.Rounding {
	case RoundFloor:
		score = sum / n
	default:
		// Scores are non-negative, so (2*sum + n) / 2n is the half-up rounding of sum/n.
		score = (2*sum + n) / (2 * n)
	}

	return score, allValid && score >= p.Threshold, nil
}
