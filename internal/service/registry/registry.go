package registry

import (
	"context"
	"sort"
	"strings"
	"time"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

const keyPrefix = "user:lastfm:"

// Store: 레지스트리가 필요로 하는 KV 연산 (cache.Service가 구현)
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	MGet(ctx context.Context, keys []string) (map[string]string, error)
	Scan(ctx context.Context, pattern string, fn func(key string) error) error
}

// Service: Discord 사용자 → Last.fm 계정 매핑 레지스트리.
// 매핑은 TTL 없이 저장되며 재등록 시 조용히 덮어쓴다.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService: 새로운 사용자 레지스트리 서비스를 생성한다.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func userKey(discordID string) string {
	return keyPrefix + discordID
}

// Register: Discord 사용자에 Last.fm 계정을 등록한다. 기존 매핑이 있으면 덮어쓴다.
func (s *Service) Register(ctx context.Context, discordID, lastfmUser string) error {
	lastfmUser = strings.TrimSpace(lastfmUser)
	if discordID == "" || lastfmUser == "" {
		return errors.NewValidationError("lastfm_user", "discord id and lastfm username are required")
	}

	user := domain.RegisteredUser{DiscordID: discordID, LastfmUser: lastfmUser}
	if err := s.store.Set(ctx, userKey(discordID), user, 0); err != nil {
		return err
	}

	s.logger.Info("user_registered",
		slog.String("discord_id", discordID),
		slog.String("lastfm_user", lastfmUser),
	)
	return nil
}

// Lookup: Discord 사용자의 Last.fm 계정을 조회한다. 미등록이면 found=false.
func (s *Service) Lookup(ctx context.Context, discordID string) (*domain.RegisteredUser, bool, error) {
	var user domain.RegisteredUser
	found, err := s.store.Get(ctx, userKey(discordID), &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

// All: 등록된 모든 매핑을 조회한다. (운영 점검용)
func (s *Service) All(ctx context.Context) ([]domain.RegisteredUser, error) {
	var keys []string
	err := s.store.Scan(ctx, keyPrefix+"*", func(key string) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.store.MGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	users := make([]domain.RegisteredUser, 0, len(values))
	for _, raw := range values {
		var user domain.RegisteredUser
		if err := unmarshalUser(raw, &user); err != nil {
			s.logger.Warn("registry_entry_corrupt", slog.Any("error", err))
			continue
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].DiscordID < users[j].DiscordID })
	return users, nil
}

func unmarshalUser(raw string, dest *domain.RegisteredUser) error {
	return json.Unmarshal([]byte(raw), dest)
}
