package resolver

import "fmt"

// FollowMode governs whether the resolver descends into imported files.
type FollowMode uint8

const (
	// FollowNone resolves nothing; only the entry file is read.
	FollowNone FollowMode = iota
	// FollowLocal follows relative imports (./, ../) and skips bare
	// package specifiers.
	FollowLocal
	// FollowAll follows relative imports and resolves bare specifiers
	// through a node_modules walk.
	FollowAll
)

func (m FollowMode) String() string {
	switch m {
	case FollowNone:
		return "none"
	case FollowLocal:
		return "local"
	case FollowAll:
		return "all"
	}
	return "unknown"
}

// ParseFollowMode parses a follow-mode name.
func ParseFollowMode(s string) (FollowMode, error) {
	switch s {
	case "none":
		return FollowNone, nil
	case "local":
		return FollowLocal, nil
	case "all":
		return FollowAll, nil
	}
	return FollowNone, fmt.Errorf("unknown follow mode %q (want none|local|all)", s)
}

// DuplicatePolicy controls what happens when two files declare the same
// top-level name.
type DuplicatePolicy uint8

const (
	// DupError fails the conversion naming both files.
	DupError DuplicatePolicy = iota
	// DupWarn keeps the first declaration and records a diagnostic.
	DupWarn
	// DupSilent keeps the first declaration without a diagnostic.
	DupSilent
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DupError:
		return "error"
	case DupWarn:
		return "warn"
	case DupSilent:
		return "silent"
	}
	return "unknown"
}

// ParseDuplicatePolicy parses a duplicate-declaration policy name.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "error":
		return DupError, nil
	case "warn":
		return DupWarn, nil
	case "silent":
		return DupSilent, nil
	}
	return DupError, fmt.Errorf("unknown duplicate policy %q (want error|warn|silent)", s)
}
