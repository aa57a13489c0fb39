package etl

import "fmt"

// Stage error codes reported to callers.
const (
	CodeEmptyInput   = "EMPTY_INPUT"
	CodeReadFailed   = "READ_FAILED"
	CodeWriteFailed  = "WRITE_FAILED"
	CodeDuplicateKey = "DUPLICATE_KEY"
)

// StageError is a structural failure of one stage: empty input, an
// unreadable feed, or a failed warehouse write. Individual bad records
// never produce a StageError; they are skipped and counted.
type StageError struct {
	Stage string
	Code  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stage %s failed (%s)", e.Stage, e.Code)
	}
	return fmt.Sprintf("stage %s failed (%s): %v", e.Stage, e.Code, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
