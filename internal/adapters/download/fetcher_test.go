package download_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkdeb/internal/adapters/download"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/zerr"
)

func serveBytes(t *testing.T, body []byte, withLength bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if withLength {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
		if r.Method == http.MethodHead {
			return
		}
		if f, ok := w.(http.Flusher); ok && !withLength {
			f.Flush()
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch_Success(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 100_000)
	srv := serveBytes(t, body, true)

	var out bytes.Buffer
	dest := filepath.Join(t.TempDir(), "nested", "i3-wm_4.17.1.orig.tar.gz")

	got, err := download.NewFetcher(&out, false).Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.NoFileExists(t, dest+domain.TempSuffix)

	assert.Equal(t, "Downloading i3-wm_4.17.1.orig.tar.gz:  97.66KB/ 97.66KB", strings.SplitN(out.String(), " [", 2)[0])
	assert.True(t, strings.HasSuffix(out.String(), "100.00%\n"))
}

func TestFetcher_Fetch_UnknownLength(t *testing.T) {
	body := []byte("tarball")
	srv := serveBytes(t, body, false)

	var out bytes.Buffer
	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")

	_, err := download.NewFetcher(&out, false).Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Contains(t, out.String(), "100.00%")
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	_, err := download.NewFetcher(io.Discard, false).Fetch(context.Background(), srv.URL, dest)
	require.ErrorIs(t, err, domain.ErrTransferFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, http.StatusNotFound, zErr.Metadata()["status"])
	assert.Equal(t, srv.URL, zErr.Metadata()["url"])
	assert.Equal(t, domain.ExitTransfer, domain.ExitCode(err))
	assert.NoFileExists(t, dest)
}

func TestFetcher_Fetch_InterruptedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", "4096")
			return
		}
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Error(err)
			return
		}
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 4096\r\n\r\n")
		_, _ = buf.Write(bytes.Repeat([]byte("y"), 100))
		_ = buf.Flush()
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	_, err := download.NewFetcher(io.Discard, false).Fetch(context.Background(), srv.URL, dest)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.NoFileExists(t, dest)
}

func TestFetcher_Fetch_SizeRequestDropped(t *testing.T) {
	gets := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			gets++
			_, _ = w.Write([]byte("payload"))
			return
		}
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Error(err)
			return
		}
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	_, err := download.NewFetcher(io.Discard, false).Fetch(context.Background(), srv.URL, dest)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.Equal(t, domain.ExitTransfer, domain.ExitCode(err))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, srv.URL, zErr.Metadata()["url"])

	assert.Zero(t, gets)
	assert.NoFileExists(t, dest)
	assert.NoFileExists(t, dest+domain.TempSuffix)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error { return nil }

func TestFetcher_Fetch_WriteFailure(t *testing.T) {
	srv := serveBytes(t, []byte("payload"), true)

	fetcher := download.NewFetcher(io.Discard, false)
	fetcher.SetOpenFile(func(string) (io.WriteCloser, error) { return failingWriter{}, nil })

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	_, err := fetcher.Fetch(context.Background(), srv.URL, dest)
	require.ErrorIs(t, err, domain.ErrTransferFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "disk full", zErr.Metadata()["cause"])
	assert.NoFileExists(t, dest)
}

func TestFetcher_Fetch_RemovesStalePartial(t *testing.T) {
	srv := serveBytes(t, []byte("fresh"), true)

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	require.NoError(t, os.WriteFile(dest+domain.TempSuffix, []byte("stale partial content"), domain.FilePerm))

	_, err := download.NewFetcher(io.Discard, false).Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
	assert.NoFileExists(t, dest+domain.TempSuffix)
}

func TestFetcher_Fetch_Canceled(t *testing.T) {
	srv := serveBytes(t, []byte("payload"), true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "pkg.tar.gz")
	_, err := download.NewFetcher(io.Discard, false).Fetch(ctx, srv.URL, dest)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.ExitInterrupted, domain.ExitCode(err))
	assert.NoFileExists(t, dest)
}
