package statestore

import (
	"errors"
	"fmt"
)

// ErrRejected is returned by Publish when the provider declined the write.
var ErrRejected = errors.New("statestore: provider rejected write")

// ClearError reports a Clear where the sequence bump, the delete, or both
// failed. If only the delete failed the old record is already stale.
type ClearError struct {
	Session string
	SeqErr  error
	DelErr  error
}

func (e *ClearError) Error() string {
	switch {
	case e.SeqErr != nil && e.DelErr != nil:
		return fmt.Sprintf("clear %q failed: seq bump and delete failed: seq=%v; delete=%v",
			e.Session, e.SeqErr, e.DelErr)
	case e.SeqErr != nil:
		return fmt.Sprintf("clear %q: seq bump failed: %v", e.Session, e.SeqErr)
	case e.DelErr != nil:
		return fmt.Sprintf("clear %q: delete failed: %v", e.Session, e.DelErr)
	default:
		return fmt.Sprintf("clear %q: unknown error", e.Session)
	}
}

func (e *ClearError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.SeqErr != nil {
		errs = append(errs, e.SeqErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}
