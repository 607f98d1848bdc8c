// internal/backend/stats.go
package backend

import (
	"context"
	"time"

	"github.com/rusenback/accident-monitor/internal/model"
)

// FetchStats returns the accident counter
func (c *Client) FetchStats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := c.getJSON(ctx, PathStats, &stats); err != nil {
		return nil, err
	}
	stats.Timestamp = time.Now()
	return &stats, nil
}

// FetchAccidentStatus returns whether an accident is in progress
func (c *Client) FetchAccidentStatus(ctx context.Context) (*model.AccidentStatus, error) {
	var status model.AccidentStatus
	if err := c.getJSON(ctx, PathAccidentStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
