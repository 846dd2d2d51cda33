package app

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/bot"
	"github.com/kapu/lastfm-discord-bot-go/internal/command"
	"github.com/kapu/lastfm-discord-bot-go/internal/config"
	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/health"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/activity"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/cache"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/chart"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/coverart"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/itunes"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/lastfm"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/registry"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/resolver"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/spotify"
)

// Container 는 애플리케이션 전역 의존성 그래프다.
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cache      *cache.Service
	Users      *registry.Service
	Session    *discordgo.Session
	Registry   *command.Registry
	Bot        *bot.Bot
	Supervisor *bot.Supervisor
	Activity   *activity.Logger
	Health     *health.Service
	Server     *http.Server
}

// newAPIClient: 외부 API 공용 HTTP 클라이언트. 동시 프로브를 감당할 커넥션 풀을 쓴다.
func newAPIClient() *http.Client {
	return &http.Client{
		Timeout: constants.APIConfig.RequestTimeout,
		Transport: &http.Transport{
			MaxConnsPerHost:     constants.TransportConfig.MaxConnsPerHost,
			MaxIdleConnsPerHost: constants.TransportConfig.MaxIdleConnsPerHost,
			IdleConnTimeout:     constants.TransportConfig.IdleConnTimeout,
		},
	}
}

// Build: 전체 의존성을 조립한다. 실패 시 생성한 리소스는 호출자가 Close로 정리한다.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	cacheService, err := cache.NewCacheService(cache.Config{
		Host:     cfg.Valkey.Host,
		Port:     cfg.Valkey.Port,
		Password: cfg.Valkey.Password,
		DB:       cfg.Valkey.DB,
	}, logger)
	if err != nil {
		return nil, err
	}

	users := registry.NewService(cacheService, logger)

	apiClient := newAPIClient()
	lastfmClient := lastfm.NewClient(cfg.Lastfm.APIKey, apiClient, logger)
	lastfmScraper := lastfm.NewScraper(apiClient, logger)

	// 프로바이더 순서가 커버 아트 우선순위다
	providers := []resolver.Provider{
		lastfm.NewProvider(lastfmClient, lastfmScraper, logger),
		itunes.NewProvider(apiClient, logger),
		coverart.NewProvider(apiClient, logger),
	}
	coverResolver := resolver.NewService(providers, resolver.NewProber(apiClient, logger), logger)

	// 토큰 갱신은 프로세스 수명 동안 계속되므로 빌드 컨텍스트의 취소와 분리한다
	spotifyService := spotify.NewService(context.WithoutCancel(ctx), cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, logger)
	if spotifyService == nil {
		logger.Info("spotify_disabled")
	}

	activityLog, err := activity.NewLogger(cfg.Activity.File, logger)
	if err != nil {
		_ = cacheService.Close()
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		_ = cacheService.Close()
		return nil, err
	}

	deps := &command.Dependencies{
		Users:     users,
		Lastfm:    lastfmClient,
		Resolver:  coverResolver,
		Chart:     chart.NewRenderer(apiClient, logger),
		Spotify:   spotifyService,
		Formatter: adapter.NewFormatter(),
		Activity:  activityLog,
		Logger:    logger,
	}

	commandRegistry := command.NewRegistry(logger)
	countdown := command.NewCountdownCommand(deps)
	commandRegistry.Register(
		command.NewRegisterCommand(deps),
		command.NewNowPlayingCommand(deps),
		command.NewCoverCommand(deps),
		command.NewChartCommand(deps),
		countdown,
		command.NewHelpCommand(commandRegistry),
	)
	commandRegistry.RegisterComponent(countdown)

	supervisor := bot.NewSupervisor(logger)
	dispatcher := bot.New(commandRegistry, bot.NewResponder(session, logger), supervisor, activityLog, logger)
	healthService := health.NewService(cacheService, cfg.Version)

	container := &Container{
		Config:     cfg,
		Logger:     logger,
		Cache:      cacheService,
		Users:      users,
		Session:    session,
		Registry:   commandRegistry,
		Bot:        dispatcher,
		Supervisor: supervisor,
		Activity:   activityLog,
		Health:     healthService,
	}
	container.Server = newHTTPServer(container)
	return container, nil
}

// Close: 보유 리소스를 역순으로 정리한다.
func (c *Container) Close() {
	if c.Activity != nil {
		_ = c.Activity.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
