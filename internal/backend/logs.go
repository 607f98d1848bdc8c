// internal/backend/logs.go
package backend

import (
	"context"

	"github.com/rusenback/accident-monitor/internal/model"
)

// FetchLogs returns every detection record, newest first as the backend
// orders them
func (c *Client) FetchLogs(ctx context.Context) ([]model.LogEntry, error) {
	var logs []model.LogEntry
	if err := c.getJSON(ctx, PathLogs, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	return logs, nil
}
