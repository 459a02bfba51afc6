package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pumlrender/internal/fileutil"
	"pumlrender/internal/plantuml"
	"pumlrender/internal/renderfail"
	"pumlrender/internal/transport"
)

// Fetcher retrieves a rendered artifact for an encoded payload.
type Fetcher interface {
	Fetch(ctx context.Context, payload string) ([]byte, error)
}

// Options control a render invocation. They are explicit call-time values;
// the renderer holds no global state.
type Options struct {
	ServerURL          string
	Format             string
	Timeout            time.Duration
	MaxRetries         int
	RetryInvalidSyntax bool
}

// Result describes a successfully rendered diagram.
type Result struct {
	RenderID   string
	SourcePath string
	OutputPath string
	Bytes      int
	Elapsed    time.Duration
}

// Renderer drives the encode-and-fetch pipeline for diagram sources.
type Renderer struct {
	fetcher Fetcher
	logger  *slog.Logger
	format  string
}

// Option customizes the renderer.
type Option func(*Renderer)

// WithFetcher overrides the transport used to fetch artifacts (useful for
// tests).
func WithFetcher(f Fetcher) Option {
	return func(r *Renderer) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// NewRenderer constructs a renderer backed by the HTTP transport.
func NewRenderer(opts Options, logger *slog.Logger, options ...Option) *Renderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	format := strings.TrimSpace(opts.Format)
	if format == "" {
		format = transport.DefaultFormat
	}
	r := &Renderer{
		fetcher: transport.New(transport.Config{
			ServerURL:          opts.ServerURL,
			Format:             format,
			Timeout:            opts.Timeout,
			MaxRetries:         opts.MaxRetries,
			RetryInvalidSyntax: opts.RetryInvalidSyntax,
		}, transport.WithLogger(logger)),
		logger: logger,
		format: format,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ReadSource validates sourcePath and returns its text content. It fails
// with a classified error when the path is missing, not a regular file,
// unreadable, or empty after trimming whitespace.
func ReadSource(sourcePath string) (string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", renderfail.New(renderfail.KindSourceNotFound, fmt.Sprintf("diagram source not found: %s", sourcePath))
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", renderfail.Wrap(renderfail.KindSourceReadPermission, fmt.Sprintf("cannot access diagram source (permission denied): %s", sourcePath), err)
		}
		return "", renderfail.Wrap(renderfail.KindSourceRead, fmt.Sprintf("inspect diagram source: %s", sourcePath), err)
	}
	if !info.Mode().IsRegular() {
		return "", renderfail.New(renderfail.KindSourceNotAFile, fmt.Sprintf("path is not a regular file: %s", sourcePath))
	}

	text, err := fileutil.ReadText(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", renderfail.Wrap(renderfail.KindSourceReadPermission, fmt.Sprintf("cannot read diagram source (permission denied): %s", sourcePath), err)
		}
		return "", renderfail.Wrap(renderfail.KindSourceRead, fmt.Sprintf("read diagram source: %s", sourcePath), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", renderfail.New(renderfail.KindSourceEmpty, fmt.Sprintf("diagram source is empty: %s", sourcePath))
	}
	return text, nil
}

// Render turns the diagram source at sourcePath into a persisted artifact.
// Validation and the empty-input check run before any network activity;
// transport failures propagate unchanged.
func (r *Renderer) Render(ctx context.Context, sourcePath string) (*Result, error) {
	start := time.Now()
	renderID := uuid.NewString()
	log := r.logger.With("render_id", renderID, "source", sourcePath)

	text, err := ReadSource(sourcePath)
	if err != nil {
		return nil, err
	}
	log.Debug("read diagram source", "bytes", len(text))

	payload := plantuml.Encode(text)
	log.Debug("encoded diagram", "payload_chars", len(payload))

	data, err := r.fetcher.Fetch(ctx, payload)
	if err != nil {
		return nil, err
	}

	outputPath := DerivePath(sourcePath, r.format)
	if err := fileutil.Writable(filepath.Dir(outputPath)); err != nil {
		return nil, renderfail.Wrap(renderfail.KindOutputWritePermission, fmt.Sprintf("cannot write artifact (permission denied): %s", outputPath), err)
	}
	if err := fileutil.WriteLocked(outputPath, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, renderfail.Wrap(renderfail.KindOutputWritePermission, fmt.Sprintf("cannot write artifact (permission denied): %s", outputPath), err)
		}
		return nil, renderfail.Wrap(renderfail.KindOutputWrite, fmt.Sprintf("write artifact: %s", outputPath), err)
	}

	elapsed := time.Since(start)
	log.Debug("generated diagram", "output", outputPath, "bytes", len(data), "elapsed", elapsed)

	return &Result{
		RenderID:   renderID,
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Bytes:      len(data),
		Elapsed:    elapsed,
	}, nil
}
