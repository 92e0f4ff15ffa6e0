package protocol

// Error codes carried in failure events. Stable strings; clients key UI off
// them.
const (
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrNoResource    = "E_NO_RESOURCE"
	ErrConflict      = "E_CONFLICT"
	ErrOutOfRange    = "E_OUT_OF_RANGE"
	ErrAllied        = "E_ALLIED"
	ErrShielded      = "E_SHIELDED"
	ErrSuperseded    = "E_SUPERSEDED"
	ErrInsufficient  = "E_INSUFFICIENT_GOLD"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:    {},
	ErrInvalidTarget: {},
	ErrNoResource:    {},
	ErrConflict:      {},
	ErrOutOfRange:    {},
	ErrAllied:        {},
	ErrShielded:      {},
	ErrSuperseded:    {},
	ErrInsufficient:  {},
}

func IsKnownCode(code string) bool {
	_, ok := knownCodes[code]
	return ok
}
