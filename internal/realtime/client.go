package realtime

import (
	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const clientBuffer = 16

type Client struct {
	ID       uuid.UUID
	UserID   int64
	Channels map[string]bool
	Outbound chan Frame
	done     chan struct{}
	closed   bool
	Logger   *logger.Logger
}

// Done is closed when the hub drops the client.
func (c *Client) Done() <-chan struct{} { return c.done }
