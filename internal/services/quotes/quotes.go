package quotes

import (
	"context"
	"fmt"
	"time"
)

// Quote is the value contract both upstream fetchers return: the quoted
// number and the update instant the source itself reported.
type Quote struct {
	Value           float64   `json:"value"`
	SourceUpdatedAt time.Time `json:"source_updated_at"`
}

// Fetcher is one upstream quote source. A single call with a bounded
// timeout; no retry, no caching.
type Fetcher interface {
	FetchQuote(ctx context.Context) (Quote, error)
}

// UpstreamError marks any quote source failure: unreachable host, timeout,
// non-success response or unexpected payload shape.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

const requestTimeout = 30 * time.Second

// sourceTimeLayout is the timestamp format both sources report, in the
// business timezone.
const sourceTimeLayout = "2006-01-02 15:04:05"
