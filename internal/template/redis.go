package template

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/10up/elasticpress-proxy/internal/domain"
	"github.com/10up/elasticpress-proxy/internal/metrics"
)

// RedisConfig holds connection parameters for a Redis template source.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	Key      string
}

// RedisSource fetches the template from a Redis key on every load.
type RedisSource struct {
	client rueidis.Client
	key    string
}

// NewRedis creates a Redis-backed template source via rueidis.
func NewRedis(cfg RedisConfig) (*RedisSource, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("key is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisSource{client: client, key: cfg.Key}, nil
}

// Load fetches the template with a GET.
func (s *RedisSource) Load(ctx context.Context) ([]byte, error) {
	cmd := s.client.B().Get().Key(s.key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		metrics.TemplateLoadsTotal.WithLabelValues("redis", "error").Inc()
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("%w: key %q missing", domain.ErrTemplate, s.key)
		}
		return nil, fmt.Errorf("%w: get %q: %w", domain.ErrTemplate, s.key, err)
	}
	metrics.TemplateLoadsTotal.WithLabelValues("redis", "success").Inc()
	return data, nil
}

// HealthCheck checks connectivity.
func (s *RedisSource) HealthCheck(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *RedisSource) Close() {
	s.client.Close()
}
