package generator

import "errors"

// Generation failure modes. All three surface to the orchestrator as a
// generation failure; the wrapped cause is kept for operator logs.
var (
	// ErrProvider covers network and provider-side failures.
	ErrProvider = errors.New("generation provider error")
	// ErrFormat covers unparseable or schema-violating provider responses.
	ErrFormat = errors.New("generation response format error")
	// ErrShortfall means fewer usable questions than requested remained
	// after truncation and structural validation.
	ErrShortfall = errors.New("generation shortfall")
)
