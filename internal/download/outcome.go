package download

import (
	"errors"
	"time"
)

// ErrInterrupted reports that the download was cancelled by the user before
// completion. The partial file has already been removed when it is returned.
var ErrInterrupted = errors.New("download interrupted")

// Outcome classifies how a streaming attempt ended.
type Outcome int

const (
	// OutcomeSuccess means the full body was written to the destination.
	OutcomeSuccess Outcome = iota
	// OutcomeInterrupted means the user cancelled mid-stream; the partial
	// file was removed.
	OutcomeInterrupted
	// OutcomeFailed means a transport or storage error ended the stream;
	// the partial file was removed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes a finished streaming attempt.
type Result struct {
	Outcome  Outcome
	Filename string
	Path     string
	Bytes    int64
	Elapsed  time.Duration
}
