package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

const defaultNATSSubject = "skillbridge.notifications"

type natsBus struct {
	log     *logger.Logger
	conn    *nats.Conn
	subject string
}

func NewNATSBus(log *logger.Logger, url, subject string) (Bus, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("missing NATS_URL")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = defaultNATSSubject
	}

	busLog := log.With("service", "NATSBus")
	conn, err := nats.Connect(url,
		nats.Name("skillbridge-backend"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				busLog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			busLog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &natsBus{log: busLog, conn: conn, subject: subject}, nil
}

func (b *natsBus) Publish(ctx context.Context, msg realtime.Message) error {
	if b == nil || b.conn == nil {
		return fmt.Errorf("nats bus not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.conn.Publish(b.subject, raw)
}

func (b *natsBus) StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error {
	if b == nil || b.conn == nil {
		return fmt.Errorf("nats bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub, err := b.conn.Subscribe(b.subject, func(m *nats.Msg) {
		var msg realtime.Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			b.log.Warn("bad nats realtime payload", "error", err)
			return
		}
		onMsg(msg)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

func (b *natsBus) Close() error {
	if b == nil || b.conn == nil {
		return nil
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}
