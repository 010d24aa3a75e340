// Package check verifies that the published pages of an index respond.
package check

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docindex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs probed at once.
const DefaultConcurrency = 10

// LinkChecker probes the URL of every leaf of a language.
type LinkChecker struct {
	Prober      docindex.Prober
	RateLimiter docindex.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// link is one leaf URL to probe.
type link struct {
	position int
	path     string
	url      string
	detail   string
}

// CheckLinks probes the published URL of every leaf of lang and reports
// the unreachable ones as broken, in walk order. Transport failures and
// 5xx or 429 responses are retried; other error statuses are final.
// Returns ENOTFOUND if lang is not declared.
func (c *LinkChecker) CheckLinks(ctx context.Context, idx *docindex.Index, lang string, mapper *docindex.URLMapper, progress docindex.CheckProgressFunc) ([]docindex.Problem, error) {
	if _, ok := idx.Language(lang); !ok {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "language %q not found", lang)
	}

	var links []*link
	for p, n := range idx.Walk(lang) {
		if n.IsSection() {
			continue
		}
		u, err := mapper.URL(lang, n.Key())
		if err != nil {
			return nil, err
		}
		links = append(links, &link{position: len(links), path: p, url: u})
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = docindex.DefaultRetryDelays()
	}

	var completed atomic.Int64
	total := len(links)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, l := range links {
		g.Go(func() error {
			err := c.probe(gctx, l.url, delays)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err != nil {
				l.detail = detail(err)
			}
			if progress != nil {
				progress(docindex.CheckProgress{
					URL:       l.url,
					Completed: int(completed.Add(1)),
					Total:     total,
					Error:     err,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []docindex.Problem
	for _, l := range links {
		if l.detail == "" {
			continue
		}
		problems = append(problems, docindex.Problem{
			Kind:     docindex.ProblemBroken,
			Language: lang,
			Path:     l.path,
			Target:   l.url,
			Detail:   l.detail,
		})
	}
	return problems, nil
}

// probe checks a single URL, retrying transient failures.
func (c *LinkChecker) probe(ctx context.Context, rawURL string, delays []time.Duration) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return docindex.Errorf(docindex.EINVALID, "invalid URL %q", rawURL)
	}

	return docindex.Retry(ctx, delays, nil, func(ctx context.Context) error {
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}

		status, err := c.Prober.Probe(ctx, rawURL)
		switch {
		case err != nil:
			return err
		case status < 400:
			return nil
		case status >= 500 || status == http.StatusTooManyRequests:
			return fmt.Errorf("HTTP %d", status)
		default:
			return docindex.Errorf(docindex.ENOTFOUND, "HTTP %d", status)
		}
	})
}

// detail returns the message of application errors and the full text of
// any other error.
func detail(err error) string {
	var e *docindex.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
