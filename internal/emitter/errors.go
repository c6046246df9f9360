package emitter

import "fmt"

// NameCollisionError reports a name transform mapping two distinct
// declarations to the same output name.
type NameCollisionError struct {
	Transformed string
	First       string
	Second      string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name transform collision: %q and %q both map to %q",
		e.First, e.Second, e.Transformed)
}

// CallbackError wraps a failure raised by a user callback, carrying the
// type name being processed.
type CallbackError struct {
	Callback string
	TypeName string
	Err      error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback failed for type %q: %v", e.Callback, e.TypeName, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// DuplicateIDError reports a defineId callback producing the same id for
// two declarations.
type DuplicateIDError struct {
	ID     string
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate schema id %q produced for %q and %q", e.ID, e.First, e.Second)
}
