// Package acquire downloads manuals: it validates and retries single
// downloads and orchestrates the search, resolve and download stages for a
// whole acquisition.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/manfetch"
	"github.com/fwojciec/manfetch/bloom"
	"github.com/fwojciec/manfetch/goquery"
)

var _ manfetch.Acquirer = (*Acquirer)(nil)

// DefaultVariations are file names guessed next to a candidate URL and at
// its host root. {model} is replaced with the subject's model.
var DefaultVariations = []string{
	"manual.pdf",
	"owners-manual.pdf",
	"user-manual.pdf",
	"{model}.pdf",
}

// Acquirer orchestrates candidate generation, page resolution and download.
// It stops at the first validated PDF.
type Acquirer struct {
	Generator  manfetch.CandidateGenerator
	Resolver   manfetch.PageResolver
	Downloader manfetch.Downloader

	// Variations overrides DefaultVariations.
	Variations []string
}

// Acquire implements manfetch.Acquirer. For each ranked candidate it
// downloads PDF-looking URLs directly and resolves other pages to a PDF
// link; if that fails it tries path variations. Every URL is attempted at
// most once per call.
func (a *Acquirer) Acquire(ctx context.Context, subject manfetch.Subject) (*manfetch.Acquisition, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		acquirer: a,
		subject:  subject,
		acq:      &manfetch.Acquisition{Subject: subject},
		tried:    bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate),
	}

	result, err := a.Generator.Generate(ctx, subject)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.record("", fmt.Errorf("candidate generation: %w", err))
		return r.acq, nil
	}
	r.acq.Candidates = len(result.Candidates)

	for _, c := range result.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dl := r.candidate(ctx, c.URL); dl != nil {
			r.acq.Download = dl
			return r.acq, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.acq, nil
}

// run holds the state of one Acquire call.
type run struct {
	acquirer *Acquirer
	subject  manfetch.Subject
	acq      *manfetch.Acquisition
	tried    *bloom.Filter
}

func (r *run) candidate(ctx context.Context, candidateURL string) *manfetch.Download {
	if goquery.IsPDFURL(candidateURL) {
		if dl := r.try(ctx, candidateURL); dl != nil {
			return dl
		}
	} else {
		pdfURL, err := r.acquirer.Resolver.ResolvePage(ctx, candidateURL, r.subject)
		if err != nil {
			r.record(candidateURL, fmt.Errorf("resolve: %w", err))
		} else if dl := r.try(ctx, pdfURL); dl != nil {
			return dl
		}
	}

	variations := r.acquirer.Variations
	if variations == nil {
		variations = DefaultVariations
	}
	for _, v := range PathVariations(candidateURL, r.subject.Model, variations) {
		if dl := r.try(ctx, v); dl != nil {
			return dl
		}
	}
	return nil
}

// try downloads u unless it was already attempted in this run.
func (r *run) try(ctx context.Context, u string) *manfetch.Download {
	if ctx.Err() != nil || r.tried.CheckAndAdd(u) {
		return nil
	}
	r.acq.Attempts++

	dl, err := r.acquirer.Downloader.Download(ctx, u)
	if err != nil {
		if ctx.Err() == nil {
			r.record(u, err)
		}
		return nil
	}
	return dl
}

func (r *run) record(u string, err error) {
	if len(r.acq.Errors) >= manfetch.MaxReportedErrors {
		return
	}
	r.acq.Errors = append(r.acq.Errors, manfetch.AttemptError{URL: u, Description: describe(err)})
}

// describe renders err with any application error reduced to its message.
func describe(err error) string {
	msg := err.Error()
	var e *manfetch.Error
	if errors.As(err, &e) {
		msg = strings.Replace(msg, e.Error(), e.Message, 1)
	}
	return msg
}

// PathVariations returns guessed manual URLs in the candidate's directory
// and at its host root, without query or fragment.
func PathVariations(candidateURL, model string, names []string) []string {
	u, err := url.Parse(candidateURL)
	if err != nil || u.Host == "" {
		return nil
	}

	dir := u.Path
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir("/" + strings.TrimPrefix(dir, "/"))
	}
	dir = strings.TrimSuffix(dir, "/") + "/"
	dirs := []string{dir}
	if dir != "/" {
		dirs = append(dirs, "/")
	}

	model = strings.TrimSpace(model)
	var out []string
	for _, d := range dirs {
		for _, name := range names {
			if strings.Contains(name, "{model}") {
				if model == "" {
					continue
				}
				name = strings.ReplaceAll(name, "{model}", strings.ReplaceAll(model, "/", "-"))
			}
			v := url.URL{Scheme: u.Scheme, Host: u.Host, Path: d + name}
			out = append(out, v.String())
		}
	}
	return out
}
