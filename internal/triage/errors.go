package triage

import (
	"errors"
	"fmt"

	"ticket-triage/pkg/llmprovider"
)

// Stage names the pipeline stage a ticket failed in.
type Stage string

const (
	StageRouting    Stage = "routing"
	StageDispatch   Stage = "dispatch"
	StageGeneration Stage = "generation"
)

// Kind names the error class. Timeout is kept distinct from other
// upstream failures so callers can tell them apart.
type Kind string

const (
	// KindClassification: the router response is missing fields, carries
	// an enum value outside the closed set, or is not decodable.
	KindClassification Kind = "classification"

	// KindDispatch: no solver for a category. Unreachable given the
	// closed enum; seeing it signals a logic bug.
	KindDispatch Kind = "dispatch"

	// KindGeneration: a solver response is missing required fields or
	// carries an enum mismatch.
	KindGeneration Kind = "generation"

	// KindUpstream: the generation service itself failed (rate limit,
	// quota, transport).
	KindUpstream Kind = "upstream"

	// KindTimeout: the per-call timeout elapsed.
	KindTimeout Kind = "timeout"
)

// Error is the terminal per-ticket error: which stage failed and why.
// It is never recovered locally; the caller records it and moves on.
type Error struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a stage/kind error.
func NewError(stage Stage, kind Kind, err error) *Error {
	return &Error{Stage: stage, Kind: kind, Err: err}
}

// UpstreamKind maps a provider failure to its error kind, keeping
// timeout distinct from other upstream faults.
func UpstreamKind(err error) Kind {
	if errors.Is(err, llmprovider.ErrProviderTimeout) {
		return KindTimeout
	}
	return KindUpstream
}

// AsError unwraps err into a *triage.Error if it is one.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
