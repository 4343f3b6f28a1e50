package domain

// ErrorKind classifies the fatal conditions of the persistence layer
type ErrorKind uint8

const (
	// KindConnection means the session could not be opened or the database
	// engine failed mid-operation. The Connection is closed and must not be reused.
	KindConnection ErrorKind = iota + 1
	// KindInvalidIdentifier means a caller-supplied key is malformed.
	// No database access was attempted.
	KindInvalidIdentifier
)

// String returns a readable name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindInvalidIdentifier:
		return "invalid identifier"
	default:
		return "unknown error"
	}
}

// Error is returned for fatal conditions. Use errors.Is with ErrConnection or
// ErrInvalidIdentifier to branch on the kind.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

var (
	// ErrConnection matches any Error of kind KindConnection
	ErrConnection = &Error{Kind: KindConnection}
	// ErrInvalidIdentifier matches any Error of kind KindInvalidIdentifier
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier}
)

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewConnectionError wraps err as a KindConnection error
func NewConnectionError(op string, err error) *Error {
	return &Error{Kind: KindConnection, Op: op, Err: err}
}
