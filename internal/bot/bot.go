package bot

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/command"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/activity"
)

// Bot: 인터랙션 디스패처. 명령어 실행 결과의 응답 변형에 따라 전송 경로를 고른다.
type Bot struct {
	registry   *command.Registry
	responder  *Responder
	supervisor *Supervisor
	activity   *activity.Logger
	logger     *slog.Logger
}

// New: 디스패처를 생성한다.
func New(registry *command.Registry, responder *Responder, supervisor *Supervisor, activityLog *activity.Logger, logger *slog.Logger) *Bot {
	return &Bot{
		registry:   registry,
		responder:  responder,
		supervisor: supervisor,
		activity:   activityLog,
		logger:     logger,
	}
}

// HandleInteraction: 인터랙션 한 건을 처리한다.
// deferred 응답은 acknowledge까지 이 호출 안에서 끝내고, 나머지는 슈퍼바이저로 넘긴다.
func (b *Bot) HandleInteraction(ctx context.Context, interaction *discordgo.Interaction) error {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		return b.handleCommand(ctx, interaction)
	case discordgo.InteractionMessageComponent:
		return b.handleComponent(ctx, interaction)
	default:
		return fmt.Errorf("unsupported interaction type: %d", interaction.Type)
	}
}

func (b *Bot) handleCommand(ctx context.Context, interaction *discordgo.Interaction) error {
	data := interaction.ApplicationCommandData()
	cmdCtx := domain.NewCommandContext(interaction)
	started := time.Now()

	cmd, ok := b.registry.Get(data.Name)
	if !ok {
		b.logger.Warn("unknown_command", slog.String("name", data.Name))
		return b.responder.Message(ctx, interaction, &domain.Reply{
			Content:   adapter.MsgUnknownCommand,
			Ephemeral: true,
		})
	}

	response, err := cmd.Execute(ctx, cmdCtx, command.ParseOptions(data.Options))
	if err != nil {
		b.logger.Error("command_failed",
			slog.String("command", data.Name),
			slog.String("user_id", cmdCtx.UserID),
			slog.Any("error", err),
		)
		b.record(data.Name, cmdCtx, started, false)
		return b.responder.Message(ctx, interaction, &domain.Reply{
			Content:   adapter.MsgCommandFailed,
			Ephemeral: true,
		})
	}

	return b.send(ctx, interaction, data.Name, cmdCtx, started, response)
}

func (b *Bot) handleComponent(ctx context.Context, interaction *discordgo.Interaction) error {
	data := interaction.MessageComponentData()
	cmdCtx := domain.NewCommandContext(interaction)
	started := time.Now()

	handler, ok := b.registry.GetComponent(data.CustomID)
	if !ok {
		b.logger.Warn("unknown_component", slog.String("custom_id", data.CustomID))
		return b.responder.Message(ctx, interaction, &domain.Reply{
			Content:   adapter.MsgUnknownCommand,
			Ephemeral: true,
		})
	}

	response, err := handler.Handle(ctx, cmdCtx, data.CustomID)
	if err != nil {
		b.logger.Error("component_failed",
			slog.String("custom_id", data.CustomID),
			slog.Any("error", err),
		)
		return b.responder.Message(ctx, interaction, &domain.Reply{
			Content:   adapter.MsgCommandFailed,
			Ephemeral: true,
		})
	}

	return b.send(ctx, interaction, handler.Prefix(), cmdCtx, started, response)
}

// send: 응답 변형의 닫힌 집합을 분기한다. 새 변형 추가 시 여기도 갱신해야 한다.
func (b *Bot) send(ctx context.Context, interaction *discordgo.Interaction, name string, cmdCtx *domain.CommandContext, started time.Time, response *domain.Response) error {
	switch response.Kind {
	case domain.ResponseMessage:
		err := b.responder.Message(ctx, interaction, response.Reply)
		b.record(name, cmdCtx, started, err == nil)
		return err

	case domain.ResponseUpdate:
		err := b.responder.Update(ctx, interaction, response.Reply)
		b.record(name, cmdCtx, started, err == nil)
		return err

	case domain.ResponseDeferred:
		task, err := b.responder.Defer(ctx, interaction, response.Work)
		if err != nil {
			b.record(name, cmdCtx, started, false)
			return err
		}
		// HTTP 핸들러가 반환된 뒤에도 작업이 계속되도록 취소를 떼어낸다
		workCtx := context.WithoutCancel(ctx)
		b.supervisor.Go(func() {
			ok := task.Run(workCtx)
			b.record(name, cmdCtx, started, ok)
		})
		return nil

	default:
		return fmt.Errorf("unhandled response kind: %d", response.Kind)
	}
}

func (b *Bot) record(name string, cmdCtx *domain.CommandContext, started time.Time, success bool) {
	b.activity.Record(activity.Entry{
		Command:    name,
		UserID:     cmdCtx.UserID,
		GuildID:    cmdCtx.GuildID,
		DurationMs: time.Since(started).Milliseconds(),
		Success:    success,
	})
}
