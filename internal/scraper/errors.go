package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrBadStatus       = errors.New("unexpected status")
)

// Outcome labels reported to the Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeStatus   = "bad_status"
	OutcomeNetwork  = "network"
	OutcomeParse    = "parse"
)

// UpstreamError wraps every failure of a fetch. Status is the HTTP status
// when the upstream answered with a non-2xx code, zero otherwise.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream: %v %d", e.Err, e.Status)
	}
	return fmt.Sprintf("upstream: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
