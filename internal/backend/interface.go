// internal/backend/interface.go
package backend

import (
	"context"

	"github.com/rusenback/accident-monitor/internal/model"
)

// BackendClient lets the dashboard be tested against a fake backend
type BackendClient interface {
	FetchLogs(ctx context.Context) ([]model.LogEntry, error)
	FetchStats(ctx context.Context) (*model.Stats, error)
	FetchAccidentStatus(ctx context.Context) (*model.AccidentStatus, error)
	UploadVideo(ctx context.Context, path string) (*model.UploadResult, error)
	VideoFeedURL(source string) string
}

var _ BackendClient = (*Client)(nil)
