package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
)

// Run: 서버를 기동하고 종료 신호까지 대기한 뒤 순서대로 정리한다.
// 셧다운 순서: HTTP 수신 중단 → 진행 중인 deferred 작업 대기 → 리소스 정리.
func (c *Container) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.syncCommands(ctx)

	serverErr := make(chan error, 1)
	go func() {
		c.Logger.Info("server_started", slog.String("addr", c.Server.Addr))
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		c.Close()
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutdown_started")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.AppTimeout.Shutdown)
	defer cancel()

	if err := c.Server.Shutdown(shutdownCtx); err != nil {
		c.Logger.Error("server_shutdown_failed", slog.Any("error", err))
	}

	// 이미 acknowledge된 인터랙션은 완료까지 책임진다
	c.Supervisor.Wait()
	c.Close()

	c.Logger.Info("shutdown_complete")
	return nil
}

// syncCommands: 명령어 정의를 Discord에 일괄 등록한다. 봇 토큰이 없으면 건너뛴다.
func (c *Container) syncCommands(ctx context.Context) {
	if c.Config.Discord.BotToken == "" {
		c.Logger.Warn("command_sync_skipped", slog.String("reason", "no bot token"))
		return
	}

	defs := c.Registry.Definitions()
	if _, err := c.Session.ApplicationCommandBulkOverwrite(c.Config.Discord.AppID, "", defs, discordgo.WithContext(ctx)); err != nil {
		c.Logger.Error("command_sync_failed", slog.Any("error", err))
		return
	}
	c.Logger.Info("commands_synced", slog.Int("count", len(defs)))
}
