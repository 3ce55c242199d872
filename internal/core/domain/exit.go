package domain

import (
	"context"
	"errors"
)

// Process exit codes, one per error kind.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitParse       = 3
	ExitMismatch    = 4
	ExitSubprocess  = 5
	ExitTransfer    = 6
	ExitInterrupted = 130
)

// ExitCode classifies err into the process exit code reported by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, ErrInvalidSelection),
		errors.Is(err, ErrInvalidStrategy),
		errors.Is(err, ErrInvalidIndexFormat),
		errors.Is(err, ErrConfigRead),
		errors.Is(err, ErrConfigParse),
		errors.Is(err, ErrConfigInvalid):
		return ExitUsage
	case errors.Is(err, ErrChangelogParse):
		return ExitParse
	case errors.Is(err, ErrDistributionMismatch):
		return ExitMismatch
	case errors.Is(err, ErrSubprocessFailed):
		return ExitSubprocess
	case errors.Is(err, ErrTransferFailed):
		return ExitTransfer
	default:
		return ExitFailure
	}
}
