package debian

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WriteIndex runs dpkg-scanpackages in dir and streams its output into one
// compressed index per format. Indexes are replaced only when every one of
// them was written completely.
func (t *Toolchain) WriteIndex(ctx context.Context, dir string, formats []domain.IndexFormat) error {
	if len(formats) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrIndexWrite, "no index formats"), "dir", dir)
	}

	sinks := make([]*indexSink, 0, len(formats))
	defer func() {
		for _, s := range sinks {
			s.abort()
		}
	}()
	writers := make([]io.Writer, 0, len(formats))
	for _, format := range formats {
		s, err := openIndexSink(filepath.Join(dir, format.FileName()), format)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
		writers = append(writers, s)
	}

	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)
	out := &firstErrWriter{w: io.MultiWriter(writers...)}

	var scanErr error
	g.Go(func() error {
		scanErr = t.executor.Execute(gctx, domain.Command{
			Name: t.tools.ScanPackages,
			Args: []string{"."},
			Dir:  dir,
		}, pw, nil)
		_ = pw.CloseWithError(scanErr)
		return scanErr
	})

	g.Go(func() error {
		_, err := io.Copy(out, pr)
		if err != nil {
			_ = pr.CloseWithError(err)
			return zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "dir", dir)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		// A failed index write cancels the scan, so its error wins over the
		// cancellation reported by the executor.
		if out.err != nil {
			return zerr.With(zerr.Wrap(domain.ErrIndexWrite, out.err.Error()), "dir", dir)
		}
		if scanErr != nil {
			return scanErr
		}
		return err
	}

	for _, s := range sinks {
		if err := s.commit(); err != nil {
			return err
		}
	}
	return nil
}

// firstErrWriter remembers the first error returned by w.
type firstErrWriter struct {
	w   io.Writer
	err error
}

func (f *firstErrWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil && f.err == nil {
		f.err = err
	}
	return n, err
}

// indexSink compresses into a temporary file that is renamed on commit.
type indexSink struct {
	path string
	file *os.File
	enc  io.WriteCloser
	done bool
}

func openIndexSink(path string, format domain.IndexFormat) (*indexSink, error) {
	tmp := path + domain.TempSuffix
	//nolint:gosec // index files live in the binary directory
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "path", path)
	}

	var enc io.WriteCloser
	switch format {
	case domain.IndexXZ:
		enc, err = xz.NewWriter(f)
	default:
		enc, err = pgzip.NewWriterLevel(f, pgzip.BestCompression)
	}
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "path", path)
	}
	return &indexSink{path: path, file: f, enc: enc}, nil
}

func (s *indexSink) Write(p []byte) (int, error) {
	return s.enc.Write(p)
}

func (s *indexSink) commit() error {
	if err := s.enc.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "path", s.path)
	}
	if err := s.file.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "path", s.path)
	}
	if err := os.Rename(s.path+domain.TempSuffix, s.path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIndexWrite, err.Error()), "path", s.path)
	}
	s.done = true
	return nil
}

func (s *indexSink) abort() {
	if s.done {
		return
	}
	_ = s.enc.Close()
	_ = s.file.Close()
	_ = os.Remove(s.path + domain.TempSuffix)
}
