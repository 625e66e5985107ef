package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"osrcdl/internal/logging"
)

// DefaultChunkSize is the streaming read/write granularity.
const DefaultChunkSize int64 = 512 * 1024

// lockFileName guards a destination directory against concurrent downloads.
const lockFileName = ".osrcdl.lock"

// Options configures a streaming attempt.
type Options struct {
	// Dir is the destination directory. Defaults to the current directory.
	Dir string
	// ChunkSize is the read/write granularity in bytes. Defaults to
	// DefaultChunkSize.
	ChunkSize int64
	// Progress renders the byte progress bar. Defaults to os.Stderr; the
	// bar stays silent when the writer is not a terminal.
	Progress io.Writer
	// Logger receives completion and cleanup records.
	Logger *slog.Logger
}

// Stream writes the response body to a file named by its Content-Disposition
// header, reading in fixed-size chunks and advancing the progress indicator
// after every write. The response body is always closed.
//
// On cancellation the partial file is removed and the returned error wraps
// ErrInterrupted; on any transport or storage error the partial file is
// likewise removed. The destination is never left half-written.
func Stream(ctx context.Context, resp *http.Response, opts Options) (Result, error) {
	defer resp.Body.Close()

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	logger := logging.NewComponentLogger(opts.Logger, "download")
	progressTo := opts.Progress
	if progressTo == nil {
		progressTo = os.Stderr
	}

	filename := FilenameFromResponse(resp)
	dest := filepath.Join(dir, filename)

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("acquire download lock: %w", err)
	}
	if !locked {
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("another download is already running in %s", dir)
	}
	defer func() { _ = lock.Unlock() }()

	out, err := os.Create(dest)
	if err != nil {
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("create %s: %w", dest, err)
	}

	bar := newProgressBar(resp.ContentLength, filename, progressTo)

	abort := func(outcome Outcome, cause error) (Result, error) {
		_ = bar.Close()
		_ = out.Close()
		if removeErr := os.Remove(dest); removeErr != nil {
			logger.Warn("remove partial file failed", logging.Error(removeErr), logging.String("path", dest))
		}
		return Result{Outcome: outcome, Filename: filename, Path: dest}, cause
	}

	start := time.Now()
	buf := make([]byte, chunkSize)
	var written int64
	for {
		if ctx.Err() != nil {
			return abort(OutcomeInterrupted, fmt.Errorf("%w: %s", ErrInterrupted, filename))
		}
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return abort(OutcomeFailed, fmt.Errorf("write %s: %w", dest, writeErr))
			}
			written += int64(n)
			_ = bar.Add(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return abort(OutcomeInterrupted, fmt.Errorf("%w: %s", ErrInterrupted, filename))
			}
			return abort(OutcomeFailed, fmt.Errorf("read response: %w", readErr))
		}
	}

	_ = bar.Finish()
	_ = bar.Close()
	if err := out.Close(); err != nil {
		if removeErr := os.Remove(dest); removeErr != nil {
			logger.Warn("remove partial file failed", logging.Error(removeErr), logging.String("path", dest))
		}
		return Result{Outcome: OutcomeFailed, Filename: filename, Path: dest}, fmt.Errorf("close %s: %w", dest, err)
	}

	elapsed := time.Since(start)
	logger.Info("download complete",
		logging.String("file", filename),
		logging.String("size", humanize.Bytes(uint64(written))),
		logging.Duration("elapsed", elapsed.Round(time.Millisecond)),
	)
	return Result{
		Outcome:  OutcomeSuccess,
		Filename: filename,
		Path:     dest,
		Bytes:    written,
		Elapsed:  elapsed,
	}, nil
}
