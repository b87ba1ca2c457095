package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

const localBuffer = 256

// localBus is the single-replica Bus: messages never leave the process.
type localBus struct {
	log       *logger.Logger
	mu        sync.Mutex
	ch        chan realtime.Message
	closed    bool
	forwarder bool
}

func NewLocalBus(log *logger.Logger) Bus {
	return &localBus{
		log: log.With("service", "LocalBus"),
		ch:  make(chan realtime.Message, localBuffer),
	}
}

func (b *localBus) Publish(ctx context.Context, msg realtime.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("local bus closed")
	}
	select {
	case b.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("local bus buffer full")
	}
}

func (b *localBus) StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.forwarder {
		b.mu.Unlock()
		return fmt.Errorf("local bus forwarder already running")
	}
	b.forwarder = true
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-b.ch:
				if !ok {
					return
				}
				onMsg(m)
			}
		}
	}()
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.ch)
	return nil
}
