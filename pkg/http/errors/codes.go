package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"
	ErrCodeInvalidPosition  = "invalid_position"

	// Resource errors
	ErrCodeNotFound       = "not_found"
	ErrCodePlayerNotFound = "player_not_found"

	// Game errors
	ErrCodeGameStartFailed  = "game_start_failed"
	ErrCodeSelectionFailed  = "selection_failed"
	ErrCodePuzzleGenFailed  = "puzzle_generation_failed"
	ErrCodeLineupComplete   = "lineup_complete"
	ErrCodeTeamFetchFailed  = "team_fetch_failed"
	ErrCodePlayerListFailed = "player_list_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
