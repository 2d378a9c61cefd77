// Package executor runs a sorting pass: it validates the roots, walks the
// source tree and copies every discovered file concurrently.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/extsort/internal/copier"
	"github.com/harrison/extsort/internal/fileutil"
	"github.com/harrison/extsort/internal/logger"
	"github.com/harrison/extsort/internal/models"
	"github.com/harrison/extsort/internal/router"
	"github.com/sourcegraph/conc/pool"
)

// FileCopier copies a single file and reports the outcome.
// Implementations must contain their own failures.
type FileCopier interface {
	Copy(entry models.FileEntry) models.CopyResult
}

// Options configures an Orchestrator.
type Options struct {
	// MaxConcurrency caps in-flight copies (0 = one goroutine per file)
	MaxConcurrency int
	// Exclude holds doublestar patterns of source paths that are not copied
	Exclude []string
}

// Orchestrator coordinates one sorting run and aggregates its results.
type Orchestrator struct {
	logger         logger.Logger
	maxConcurrency int
	exclude        []string
	newCopier      func(destination string) FileCopier
}

// NewOrchestrator creates a new Orchestrator instance.
// The logger parameter is optional and can be nil.
func NewOrchestrator(log logger.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = logger.Discard
	}

	return &Orchestrator{
		logger:         log,
		maxConcurrency: opts.MaxConcurrency,
		exclude:        opts.Exclude,
		newCopier: func(destination string) FileCopier {
			return copier.New(router.New(destination), log)
		},
	}
}

// Run sorts every regular file under source into destination.
//
// The source is validated before the destination is touched. Copies run
// concurrently and Run returns once all of them have finished. Individual
// copy failures are logged and counted, never returned. A *SetupError is
// returned when the run cannot start or the source root cannot be read.
// When ctx is cancelled no further copies are launched; copies already in
// flight complete and ctx.Err() is returned with the partial result.
func (o *Orchestrator) Run(ctx context.Context, source, destination string) (*models.SortResult, error) {
	startTime := time.Now()
	result := &models.SortResult{
		RunID:       uuid.NewString(),
		Source:      source,
		Destination: destination,
	}

	if err := fileutil.ValidateSource(source); err != nil {
		if errors.Is(err, fileutil.ErrSourceNotFound) || errors.Is(err, fileutil.ErrSourceNotDir) {
			o.logger.LogError(fmt.Sprintf("Source path does not exist or is not a directory: %s", source))
		} else {
			o.logger.LogError(err.Error())
		}
		return result, &SetupError{Phase: PhaseValidate, Path: source, Err: err}
	}

	if err := fileutil.EnsureDir(destination); err != nil {
		o.logger.LogError(fmt.Sprintf("Failed to create destination %s: %v", destination, err))
		return result, &SetupError{Phase: PhaseDestination, Path: destination, Err: err}
	}

	o.logger.LogInfo(fmt.Sprintf("Run %s: sorting %s into %s", result.RunID, source, destination))

	// In-flight copies must never be picked up as sources
	exclude := append([]string{"**/" + copier.TempPattern}, o.exclude...)
	walkOpts := fileutil.WalkOptions{Exclude: exclude}
	if fileutil.IsWithin(source, destination) {
		// Never re-copy our own output
		walkOpts.SkipDirs = []string{destination}
	}

	fileCopier := o.newCopier(destination)

	p := pool.New()
	if o.maxConcurrency > 0 {
		p = p.WithMaxGoroutines(o.maxConcurrency)
	}

	var mu sync.Mutex
	var runErr error

	for entry, err := range fileutil.Walk(source, walkOpts) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = ctxErr
			break
		}

		if err != nil {
			var walkErr *fileutil.WalkError
			if errors.As(err, &walkErr) && walkErr.Root {
				o.logger.LogError(err.Error())
				runErr = &SetupError{Phase: PhaseWalk, Path: source, Err: err}
				break
			}
			o.logger.LogWarn(fmt.Sprintf("Skipping: %v", err))
			result.Skipped++
			continue
		}

		result.Discovered++
		p.Go(func() {
			copyResult := fileCopier.Copy(entry)

			mu.Lock()
			defer mu.Unlock()
			result.Record(copyResult)
		})
	}

	p.Wait()

	result.Duration = time.Since(startTime)
	o.logSummary(result, runErr)

	return result, runErr
}

// logSummary logs the end-of-run counts.
func (o *Orchestrator) logSummary(result *models.SortResult, runErr error) {
	message := fmt.Sprintf("Run %s complete: %d copied, %d failed, %d skipped in %s",
		result.RunID,
		result.Copied,
		result.Failed,
		result.Skipped,
		result.Duration.Round(time.Millisecond),
	)

	if runErr != nil {
		o.logger.LogWarn(fmt.Sprintf("%s (stopped early: %v)", message, runErr))
		return
	}
	o.logger.LogInfo(message)
}
