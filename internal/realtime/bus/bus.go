package bus

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

const (
	KindLocal = "local"
	KindRedis = "redis"
	KindNATS  = "nats"
)

// Bus carries realtime Messages between API replicas. Publish may be called
// from any goroutine; StartForwarder delivers every published Message to onMsg.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}

type Config struct {
	Kind         string
	RedisAddr    string
	RedisChannel string
	NATSURL      string
	NATSSubject  string
}

func New(cfg Config, log *logger.Logger) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindLocal:
		return NewLocalBus(log), nil
	case KindRedis:
		return NewRedisBus(log, cfg.RedisAddr, cfg.RedisChannel)
	case KindNATS:
		return NewNATSBus(log, cfg.NATSURL, cfg.NATSSubject)
	default:
		return nil, fmt.Errorf("unknown realtime bus %q", cfg.Kind)
	}
}
