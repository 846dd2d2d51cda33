package cache

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"log/slog"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/util"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Service: Valkey(Redis) 클라이언트를 래핑하여 단순 Key-Value 연산을 제공하는 서비스.
// 사용자 레지스트리가 요구하는 get/set/scan/mget 계약을 그대로 노출한다.
type Service struct {
	client    valkey.Client
	logger    *slog.Logger
	closeOnce sync.Once
}

// Config: Valkey 연결 설정을 담는 구조체
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewCacheService: 새로운 Valkey 캐시 서비스 인스턴스를 생성하고 연결을 수립한다.
func NewCacheService(cfg Config, logger *slog.Logger) (*Service, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		ConnWriteTimeout:  constants.ValkeyConfig.ConnWriteTimeout,
		BlockingPoolSize:  constants.ValkeyConfig.BlockingPoolSize,
		PipelineMultiplex: constants.ValkeyConfig.PipelineMultiplex,
		Dialer:            net.Dialer{Timeout: constants.ValkeyConfig.DialTimeout},
	})
	if err != nil {
		return nil, errors.NewCacheError("init", "", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ValkeyConfig.ReadyTimeout)
	defer cancel()

	// Ping 테스트
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, errors.NewCacheError("ping", "", err)
	}

	logger.Info("kv_store_connected",
		slog.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		slog.Int("db", cfg.DB),
	)

	return &Service{
		client: client,
		logger: logger,
	}, nil
}

// GetString: 키에 해당하는 문자열 값을 조회한다. 키가 없으면 found=false를 반환한다.
func (c *Service) GetString(ctx context.Context, key string) (string, bool, error) {
	resp := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if util.IsValkeyNil(resp.Error()) {
		return "", false, nil
	}
	if resp.Error() != nil {
		c.logger.Error("kv_get_failed", slog.String("key", key), slog.Any("error", resp.Error()))
		return "", false, errors.NewCacheError("get", key, resp.Error())
	}

	value, err := resp.ToString()
	if err != nil {
		return "", false, errors.NewCacheError("get", key, err)
	}
	return value, true, nil
}

// Get: 키에 해당하는 값을 조회하고, 결과를 dest에 JSON 언마샬링한다. 키가 없으면 found=false.
func (c *Service) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, found, err := c.GetString(ctx, key)
	if err != nil || !found {
		return found, err
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("kv_unmarshal_failed", slog.String("key", key), slog.Any("error", err))
			return false, errors.NewCacheError("get", key, err)
		}
	}
	return true, nil
}

// SetString: 문자열 값을 키에 저장한다. (TTL 0이면 무기한)
func (c *Service) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = c.client.B().Set().Key(key).Value(value).ExSeconds(int64(ttl.Seconds())).Build()
	} else {
		cmd = c.client.B().Set().Key(key).Value(value).Build()
	}

	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Error("kv_set_failed", slog.String("key", key), slog.Any("error", err))
		return errors.NewCacheError("set", key, err)
	}
	return nil
}

// Set: 값을 JSON으로 마샬링하여 키에 저장한다. (TTL 지정 가능)
func (c *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("set", key, err)
	}
	return c.SetString(ctx, key, string(jsonData), ttl)
}

// MGet: 여러 키를 한 번에 조회한다. 존재하는 키만 결과 맵에 담긴다.
func (c *Service) MGet(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return make(map[string]string), nil
	}

	resp := c.client.Do(ctx, c.client.B().Mget().Key(keys...).Build())
	if resp.Error() != nil {
		c.logger.Error("kv_mget_failed", slog.Int("keys", len(keys)), slog.Any("error", resp.Error()))
		return nil, errors.NewCacheError("mget", fmt.Sprintf("%d keys", len(keys)), resp.Error())
	}

	values, err := resp.AsStrSlice()
	if err != nil {
		return nil, errors.NewCacheError("mget", "", err)
	}

	result := make(map[string]string, len(keys))
	for i, key := range keys {
		if i < len(values) && values[i] != "" {
			result[key] = values[i]
		}
	}
	return result, nil
}

// Del: 지정된 키를 삭제한다.
func (c *Service) Del(ctx context.Context, key string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(key).Build()).Error(); err != nil {
		c.logger.Error("kv_del_failed", slog.String("key", key), slog.Any("error", err))
		return errors.NewCacheError("del", key, err)
	}
	return nil
}

// Scan: 패턴과 일치하는 모든 키를 SCAN 커서로 순회하며 fn에 전달한다.
// KEYS와 달리 스토어를 블로킹하지 않는다. fn이 에러를 반환하면 순회를 중단한다.
func (c *Service) Scan(ctx context.Context, pattern string, fn func(key string) error) error {
	var cursor uint64
	for {
		resp := c.client.Do(ctx, c.client.B().Scan().Cursor(cursor).Match(pattern).Count(constants.ValkeyConfig.ScanCount).Build())
		if resp.Error() != nil {
			c.logger.Error("kv_scan_failed", slog.String("pattern", pattern), slog.Any("error", resp.Error()))
			return errors.NewCacheError("scan", pattern, resp.Error())
		}

		entry, err := resp.AsScanEntry()
		if err != nil {
			return errors.NewCacheError("scan", pattern, err)
		}

		for _, key := range entry.Elements {
			if err := fn(key); err != nil {
				return err
			}
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

// Exists: 키가 존재하는지 확인한다.
func (c *Service) Exists(ctx context.Context, key string) (bool, error) {
	resp := c.client.Do(ctx, c.client.B().Exists().Key(key).Build())
	if resp.Error() != nil {
		return false, errors.NewCacheError("exists", key, resp.Error())
	}

	count, err := resp.AsInt64()
	if err != nil {
		return false, errors.NewCacheError("exists", key, err)
	}
	return count > 0, nil
}

// IsConnected: 캐시 스토어와 연결되어 있는지(PING 응답 여부) 확인한다.
func (c *Service) IsConnected(ctx context.Context) bool {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error() == nil
}

// Close: 캐시 스토어 연결을 안전하게 종료한다.
func (c *Service) Close() error {
	c.closeOnce.Do(func() {
		if c.client == nil {
			return
		}
		c.client.Close()
		c.logger.Info("kv_store_disconnected")
	})
	return nil
}
