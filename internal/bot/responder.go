package bot

import (
	"context"
	"io"
	"sync/atomic"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// InteractionAPI 는 응답 전송에 필요한 Discord REST 호출의 부분집합이다.
type InteractionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Responder: 응답 변형별 전송을 담당한다. deferred 프로토콜의 순서 보장
// (acknowledge가 항상 complete보다 먼저)은 이 타입의 계약이다.
type Responder struct {
	api    InteractionAPI
	logger *slog.Logger
}

// NewResponder: 응답 전송기를 생성한다.
func NewResponder(api InteractionAPI, logger *slog.Logger) *Responder {
	return &Responder{api: api, logger: logger}
}

func replyToResponseData(reply *domain.Reply) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    reply.Content,
		Embeds:     reply.Embeds,
		Components: reply.Components,
		Files:      reply.Files,
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

// Message: 즉시 단일 메시지로 응답한다.
func (r *Responder) Message(ctx context.Context, interaction *discordgo.Interaction, reply *domain.Reply) error {
	return r.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: replyToResponseData(reply),
	}, discordgo.WithContext(ctx))
}

// Update: 컴포넌트 클릭 대상 메시지를 수정한다.
func (r *Responder) Update(ctx context.Context, interaction *discordgo.Interaction, reply *domain.Reply) error {
	return r.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: replyToResponseData(reply),
	}, discordgo.WithContext(ctx))
}

// DeferredTask 는 acknowledge가 끝난 deferred 응답의 후속 작업이다.
// done 플래그가 complete의 최대 1회 실행을 보장한다.
type DeferredTask struct {
	responder   *Responder
	interaction *discordgo.Interaction
	work        domain.WorkFunc
	done        atomic.Bool
}

// Defer: acknowledge를 전송하고 후속 작업 핸들을 반환한다.
// acknowledge가 실패하면 follow-up 편집도 불가능하므로 작업을 시작하지 않는다.
func (r *Responder) Defer(ctx context.Context, interaction *discordgo.Interaction, work domain.WorkFunc) (*DeferredTask, error) {
	ackCtx, cancel := context.WithTimeout(ctx, constants.InteractionConfig.AckTimeout)
	defer cancel()

	err := r.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ackCtx))
	if err != nil {
		return nil, err
	}

	return &DeferredTask{
		responder:   r,
		interaction: interaction,
		work:        work,
	}, nil
}

// Run: 백그라운드 작업을 실행하고 결과로 complete를 전송한다.
// 작업 실패 시에도 사용자에게 오류 안내를 남긴다. (무응답으로 끝나지 않도록)
// 반환값은 작업 자체의 성공 여부다.
func (t *DeferredTask) Run(ctx context.Context) bool {
	reply, err := t.work(ctx)
	if err != nil {
		t.responder.logger.Error("deferred_work_failed",
			slog.String("interaction_id", t.interaction.ID),
			slog.Any("error", err),
		)
		reply = &domain.Reply{Content: adapter.MsgCommandFailed}
	}
	t.Complete(ctx, reply)
	return err == nil
}

// Complete: @original 메시지를 최종 페이로드로 편집한다. 중복 호출은 조용히 버린다.
// 편집이 실패하면 최후 수단으로 follow-up 메시지를 시도한다.
func (t *DeferredTask) Complete(ctx context.Context, reply *domain.Reply) {
	if !t.done.CompareAndSwap(false, true) {
		return
	}

	edit := &discordgo.WebhookEdit{
		Content:    &reply.Content,
		Embeds:     &reply.Embeds,
		Components: &reply.Components,
		Files:      reply.Files,
	}

	if _, err := t.responder.api.InteractionResponseEdit(t.interaction, edit, discordgo.WithContext(ctx)); err != nil {
		t.responder.logger.Error("complete_edit_failed",
			slog.String("interaction_id", t.interaction.ID),
			slog.Any("error", err),
		)

		params := &discordgo.WebhookParams{
			Content: reply.Content,
			Embeds:  reply.Embeds,
			Files:   rewindFiles(reply.Files),
		}
		if _, err := t.responder.api.FollowupMessageCreate(t.interaction, false, params, discordgo.WithContext(ctx)); err != nil {
			t.responder.logger.Error("followup_failed",
				slog.String("interaction_id", t.interaction.ID),
				slog.Any("error", err),
			)
		}
	}
}

// rewindFiles: 실패한 편집 시도가 이미 소비한 첨부 리더를 처음으로 되감는다.
// 되감을 수 없는 리더는 빈 첨부로 전송되므로 목록에서 뺀다.
func rewindFiles(files []*discordgo.File) []*discordgo.File {
	usable := make([]*discordgo.File, 0, len(files))
	for _, file := range files {
		seeker, ok := file.Reader.(io.Seeker)
		if !ok {
			continue
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			continue
		}
		usable = append(usable, file)
	}
	return usable
}
