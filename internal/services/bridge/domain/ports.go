package domain

import (
	"context"
	"time"

	"bridgewatch/internal/core/schedule"
)

// PageSource fetches the raw announcement page
type PageSource interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ReaderPort serves the last accepted status
type ReaderPort interface {
	// Latest returns the last accepted status as derived at refresh time
	Latest() (Status, error)
	// StatusAt re-derives the last accepted status for another reference clock
	StatusAt(now time.Time) (Status, error)
}

// RefresherPort fetches and extracts the page now
type RefresherPort interface {
	Refresh(ctx context.Context) (Status, error)
}

// RunnerPort is the background poll loop
type RunnerPort interface {
	Run(ctx context.Context) error
}

// ParserPort extracts a caller supplied page or block list without touching the stored status
type ParserPort interface {
	Parse(ctx context.Context, in ParseInput) (schedule.Result, error)
}
