package ports

import (
	"context"
	"time"
)

// Tracer starts spans around pipeline steps.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Start creates a span named name as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a unit of traced work.
type Span interface {
	// End completes the span.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Renderer presents span lifecycle events to the user.
type Renderer interface {
	// OnTaskStart is called when a span starts. distribution is the target
	// distribution of the step, or empty when the span carries none.
	OnTaskStart(spanID, parentID, name, distribution string, startTime time.Time)
	// OnTaskComplete is called when a span ends; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
