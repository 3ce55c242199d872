// Package download fetches upstream tarballs over HTTP.
package download

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/ui/progress"
	"go.trai.ch/zerr"
)

// DefaultSizeEstimate is the assumed size when the server does not report one.
const DefaultSizeEstimate int64 = 2320000

const chunkSize = 32 * 1024

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	client      *http.Client
	out         io.Writer
	interactive bool
	progress    []progress.Option
	openFile    func(name string) (io.WriteCloser, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithProgressOptions passes options to every progress reporter.
func WithProgressOptions(opts ...progress.Option) Option {
	return func(f *Fetcher) {
		f.progress = append(f.progress, opts...)
	}
}

// NewFetcher creates a Fetcher reporting progress to out.
func NewFetcher(out io.Writer, interactive bool, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      http.DefaultClient,
		out:         out,
		interactive: interactive,
		openFile: func(name string) (io.WriteCloser, error) {
			//nolint:gosec // destination is derived from the output directory
			return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url into dest.tmp and renames it to dest once complete.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (string, error) {
	tmp := dest + domain.TempSuffix
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", transferError(err, "failed to remove partial download", url)
	}
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return "", transferError(err, "failed to create download directory", url)
	}

	total, err := f.contentLength(ctx, url)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", transferError(err, "failed to create request", url)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", failure(ctx, err, "request failed", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", zerr.With(
			zerr.With(zerr.Wrap(domain.ErrTransferFailed, "unexpected response status"), "url", url),
			"status", resp.StatusCode,
		)
	}

	file, err := f.openFile(tmp)
	if err != nil {
		return "", transferError(err, "failed to create file", url)
	}

	reporter := progress.NewReporter(f.out, filepath.Base(dest), f.interactive, f.progress...)
	received, err := copyWithProgress(ctx, file, resp.Body, reporter, total)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return "", zerr.With(failure(ctx, err, "download interrupted", url), "received", received)
	}
	reporter.Finish(received)

	if err := os.Rename(tmp, dest); err != nil {
		return "", transferError(err, "failed to move download into place", url)
	}
	return dest, nil
}

// contentLength asks the server for the size of url. A response without a
// length falls back to the default estimate.
func (f *Fetcher) contentLength(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return 0, transferError(err, "failed to create size request", url)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, failure(ctx, err, "size request failed", url)
	}
	_ = resp.Body.Close()
	if resp.ContentLength > 0 {
		return resp.ContentLength, nil
	}
	return DefaultSizeEstimate, nil
}

func copyWithProgress(
	ctx context.Context, dst io.Writer, src io.Reader, reporter *progress.Reporter, total int64,
) (int64, error) {
	buf := make([]byte, chunkSize)
	var received int64
	for {
		if err := ctx.Err(); err != nil {
			return received, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return received, err
			}
			received += int64(n)
			reporter.Update(received, total)
		}
		if errors.Is(readErr, io.EOF) {
			return received, nil
		}
		if readErr != nil {
			return received, readErr
		}
	}
}

// failure keeps cancellation distinguishable from transfer errors.
func failure(ctx context.Context, err error, msg, url string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, msg), "url", url)
	}
	return transferError(err, msg, url)
}

func transferError(err error, msg, url string) error {
	wrapped := zerr.With(zerr.Wrap(domain.ErrTransferFailed, msg), "url", url)
	return zerr.With(wrapped, "cause", err.Error())
}
