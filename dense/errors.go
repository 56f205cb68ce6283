package dense

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every operation error wraps exactly one of
// these, so callers can branch with errors.Is regardless of which
// package produced the failure.
var (
	// ErrInvalidShape marks inputs whose dimensions cannot be
	// processed: empty buffers, channel-count mismatches, windows
	// larger than the image.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrInvalidParameter marks out-of-range or unknown arguments:
	// negative window sizes, unknown enum values, non-finite sigmas.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedConversion marks color-space or dtype pairings
	// with no defined conversion path.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrRange marks values that do not fit the requested output
	// dtype, such as a label count exceeding u8.
	ErrRange = errors.New("value out of range")
)

// OpError records the operation that failed along with the underlying
// cause. The cause wraps one of the sentinel kinds above.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Errf builds an OpError for op whose cause wraps the sentinel kind
// and carries a formatted detail message.
func Errf(op string, kind error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return &OpError{Op: op, Err: fmt.Errorf("%w: %s", kind, detail)}
}

// wrapOp attaches the operation name to an error that already carries
// its kind, typically one returned by Shape.Validate.
func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
