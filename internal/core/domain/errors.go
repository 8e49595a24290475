package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidTicketKey is returned when a snapshot has an empty or mismatched ticket key.
	ErrInvalidTicketKey = zerr.New("invalid ticket key")

	// ErrUnknownField is returned when a field name is not one of the known snapshot fields.
	ErrUnknownField = zerr.New("unknown field")

	// ErrNoValidatedFields is returned when the set of fields to validate is empty.
	ErrNoValidatedFields = zerr.New("no fields configured for validation")

	// ErrNoFieldResults is returned when an aggregate is requested over an empty result list.
	ErrNoFieldResults = zerr.New("cannot aggregate an empty field result list")

	// ErrInvalidRounding is returned when a rounding policy name is not recognised.
	ErrInvalidRounding = zerr.New("invalid rounding policy, expected 'half-up' or 'floor'")

	// ErrInvalidThreshold is returned when the validity threshold is outside the score range.
	ErrInvalidThreshold = zerr.New("validity threshold must be between 1 and 10")

	// ErrScoreOutOfRange is returned when a field score is outside 0..10.
	ErrScoreOutOfRange = zerr.New("field score out of range")

	// ErrFieldMismatch is returned when a validator answers for a different field than asked.
	ErrFieldMismatch = zerr.New("validator returned a result for a different field")

	// ErrHistoryReadFailed is returned when the history entry for a ticket cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read validation history")

	// ErrHistoryWriteFailed is returned when the history entry for a ticket cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write validation history")

	// ErrHistoryClearFailed is returned when the history store cannot be cleared.
	ErrHistoryClearFailed = zerr.New("failed to clear validation history")

	// ErrStoreCreateFailed is returned when the history store location cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create history store")

	// ErrStoreMarshalFailed is returned when a history entry cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal history entry")

	// ErrStoreUnmarshalFailed is returned when a history entry cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal history entry")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("could not find recheck.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file contains an invalid value.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrTicketNotFound is returned when a ticket key has no backing ticket file.
	ErrTicketNotFound = zerr.New("ticket not found")

	// ErrTicketReadFailed is returned when a ticket file cannot be read or parsed.
	ErrTicketReadFailed = zerr.New("failed to read ticket")

	// ErrDuplicateTicket is returned when two ticket files declare the same key.
	ErrDuplicateTicket = zerr.New("duplicate ticket key")

	// ErrValidatorRequestFailed is returned when the field validator cannot be reached.
	ErrValidatorRequestFailed = zerr.New("field validator request failed")

	// ErrValidatorReplyInvalid is returned when the field validator reply cannot be interpreted.
	ErrValidatorReplyInvalid = zerr.New("field validator reply could not be interpreted")

	// ErrMissingAPIKey is returned when the validator API key environment variable is unset.
	ErrMissingAPIKey = zerr.New("validator API key is not set")

	// ErrWatchFailed is returned when the ticket directory cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch ticket directory")

	// ErrInvalidOutputMode is returned when the --output flag is not plain, color or auto.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'plain', 'color' or 'auto'")

	// ErrNoTicketsSpecified is returned when validation is requested without any tickets.
	ErrNoTicketsSpecified = zerr.New("no tickets specified")

	// ErrValidationFailed is returned when one or more tickets could not be validated.
	ErrValidationFailed = zerr.New("ticket validation failed")
)
