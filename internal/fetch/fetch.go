// Package fetch downloads the dataset archive.
package fetch

import (
	"context"
	"fmt"
)

// Fetcher downloads url into the file at dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", err.URL, err.Status)
}
