package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingLoader implements docindex.Loader.
var _ docindex.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging.
type LoggingLoader struct {
	next   docindex.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next docindex.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) Load(ctx context.Context, location string) (data []byte, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load index",
			"location", location,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, location)
}

// Ensure LoggingProber implements docindex.Prober.
var _ docindex.Prober = (*LoggingProber)(nil)

// LoggingProber wraps a Prober with logging. Failed and non-2xx probes are
// logged as warnings.
type LoggingProber struct {
	next   docindex.Prober
	logger *slog.Logger
}

// NewLoggingProber creates a new LoggingProber.
func NewLoggingProber(next docindex.Prober, logger *slog.Logger) *LoggingProber {
	return &LoggingProber{next: next, logger: logger}
}

// Probe delegates to the wrapped prober and logs the result.
func (p *LoggingProber) Probe(ctx context.Context, url string) (status int, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil || status >= 300 {
			level = slog.LevelWarn
		}
		p.logger.Log(ctx, level, "probe",
			"url", url,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Probe(ctx, url)
}

// Ensure LoggingFetcher implements docindex.Fetcher.
var _ docindex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Name tells apart the
// fetchers of one run, such as "http" and "browser".
type LoggingFetcher struct {
	next   docindex.Fetcher
	name   string
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docindex.Fetcher, name string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, name: name, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"fetcher", f.name,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
