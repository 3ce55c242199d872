package ports

import (
	"context"
	"io"

	"go.trai.ch/mkdeb/internal/core/domain"
)

// Executor runs external programs.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd and waits for it to exit.
	//
	// A nil stdout or stderr forwards the stream to the logger line by line.
	// A non-zero exit is reported as an error wrapping domain.ErrSubprocessFailed.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
