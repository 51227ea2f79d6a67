package polycache

import "fmt"

// Kind classifies the error conditions a Cache can return. See spec §7:
// these two kinds, and nothing else, are ever surfaced as error values.
// Violations of internal invariants are programmer errors and panic
// instead of returning a Kind.
type Kind int

const (
	// InvalidArgument marks a construction-time failure: non-positive
	// capacity, non-positive K, non-positive shard count, or similar.
	InvalidArgument Kind = iota
	// NotFound marks an explicit Remove of an absent key, for the
	// engines that choose to surface it (see each engine's doc comment).
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by constructors and Remove.
// Use errors.Is against ErrInvalidArgument/ErrNotFound, or errors.As to
// recover the Kind and message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, polycache.ErrNotFound) works without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for errors.Is comparisons. Their Msg fields are not
// meaningful; only Kind is compared by (*Error).Is.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument, Msg: "invalid argument"}
	ErrNotFound        = &Error{Kind: NotFound, Msg: "not found"}
)

// InvalidArgumentf constructs an InvalidArgument error with a formatted
// message. Exported so policy engines in sibling packages can build
// constructor errors without duplicating the error shape.
func InvalidArgumentf(format string, args ...any) error {
	return &Error{Kind: InvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf constructs a NotFound error for the given key. Exported so
// policy engines in sibling packages can build Remove errors without
// duplicating the error shape.
func NotFoundf[K any](key K) error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf("key not found: %v", key)}
}
