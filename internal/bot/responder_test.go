package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

type apiCall struct {
	name     string
	resp     *discordgo.InteractionResponse
	edit     *discordgo.WebhookEdit
	followup *discordgo.WebhookParams
}

type fakeAPI struct {
	mu          sync.Mutex
	calls       []apiCall
	respondErr  error
	editErr     error
	followupErr error
}

func (f *fakeAPI) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, apiCall{name: "respond", resp: resp})
	return f.respondErr
}

func (f *fakeAPI) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, apiCall{name: "edit", edit: edit})
	return &discordgo.Message{}, f.editErr
}

func (f *fakeAPI) FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, apiCall{name: "followup", followup: data})
	return &discordgo.Message{}, f.followupErr
}

func (f *fakeAPI) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.calls))
	for i, call := range f.calls {
		names[i] = call.name
	}
	return names
}

func testInteraction() *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    "int-1",
		AppID: "app-1",
		Token: "token-1",
		Type:  discordgo.InteractionApplicationCommand,
	}
}

func newTestResponder(api *fakeAPI) *Responder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResponder(api, logger)
}

func TestDeferSendsAckBeforeWorkRuns(t *testing.T) {
	api := &fakeAPI{}
	responder := newTestResponder(api)

	workRan := false
	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		workRan = true
		return &domain.Reply{Content: "done"}, nil
	})
	if err != nil {
		t.Fatalf("defer failed: %v", err)
	}
	if workRan {
		t.Fatalf("work must not run during defer")
	}

	names := api.callNames()
	if len(names) != 1 || names[0] != "respond" {
		t.Fatalf("expected a single ack before work: %v", names)
	}
	if api.calls[0].resp.Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Fatalf("ack must be a deferral: %v", api.calls[0].resp.Type)
	}

	if !task.Run(context.Background()) {
		t.Fatalf("successful work must report success")
	}
	names = api.callNames()
	if len(names) != 2 || names[1] != "edit" {
		t.Fatalf("expected ack then edit: %v", names)
	}
}

func TestDeferFailureSkipsWork(t *testing.T) {
	api := &fakeAPI{respondErr: fmt.Errorf("discord unreachable")}
	responder := newTestResponder(api)

	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		t.Errorf("work must not start when ack fails")
		return nil, nil
	})
	if err == nil {
		t.Fatalf("expected defer error")
	}
	if task != nil {
		t.Fatalf("no task expected on ack failure")
	}
}

func TestCompleteRunsExactlyOnce(t *testing.T) {
	api := &fakeAPI{}
	responder := newTestResponder(api)

	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		return &domain.Reply{Content: "done"}, nil
	})
	if err != nil {
		t.Fatalf("defer failed: %v", err)
	}

	reply := &domain.Reply{Content: "done"}
	task.Complete(context.Background(), reply)
	task.Complete(context.Background(), reply) // 중복 호출은 무시
	task.Complete(context.Background(), reply)

	edits := 0
	for _, name := range api.callNames() {
		if name == "edit" {
			edits++
		}
	}
	if edits != 1 {
		t.Fatalf("complete must edit exactly once, got %d", edits)
	}
}

func TestCompleteFallsBackToFollowup(t *testing.T) {
	api := &fakeAPI{editErr: fmt.Errorf("edit rejected")}
	responder := newTestResponder(api)

	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		return &domain.Reply{Content: "done"}, nil
	})
	if err != nil {
		t.Fatalf("defer failed: %v", err)
	}

	task.Complete(context.Background(), &domain.Reply{Content: "done"})

	names := api.callNames()
	if len(names) != 3 || names[1] != "edit" || names[2] != "followup" {
		t.Fatalf("expected edit then followup fallback: %v", names)
	}
}

type unseekableReader struct{}

func (*unseekableReader) Read([]byte) (int, error) { return 0, io.EOF }

func TestCompleteFallbackRewindsAttachments(t *testing.T) {
	api := &fakeAPI{editErr: fmt.Errorf("edit rejected")}
	responder := newTestResponder(api)

	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		return &domain.Reply{Content: "done"}, nil
	})
	if err != nil {
		t.Fatalf("defer failed: %v", err)
	}

	payload := []byte("jpeg-bytes")
	reader := bytes.NewReader(payload)
	// 실패한 편집의 본문 구성이 리더를 끝까지 소비한 상황을 재현한다
	if _, err := io.Copy(io.Discard, reader); err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	task.Complete(context.Background(), &domain.Reply{
		Content: "chart",
		Files: []*discordgo.File{
			{Name: "chart.jpg", ContentType: "image/jpeg", Reader: reader},
			{Name: "stream.bin", Reader: &unseekableReader{}},
		},
	})

	var followup *discordgo.WebhookParams
	for _, call := range api.calls {
		if call.name == "followup" {
			followup = call.followup
		}
	}
	if followup == nil {
		t.Fatalf("expected a followup fallback: %v", api.callNames())
	}
	if len(followup.Files) != 1 || followup.Files[0].Name != "chart.jpg" {
		t.Fatalf("unrewindable attachments must be dropped: %+v", followup.Files)
	}

	data, err := io.ReadAll(followup.Files[0].Reader)
	if err != nil {
		t.Fatalf("read followup attachment failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("attachment must be rewound before the followup, got %q", data)
	}
}

func TestRunCompletesWithErrorNoticeOnWorkFailure(t *testing.T) {
	api := &fakeAPI{}
	responder := newTestResponder(api)

	task, err := responder.Defer(context.Background(), testInteraction(), func(ctx context.Context) (*domain.Reply, error) {
		return nil, fmt.Errorf("upstream down")
	})
	if err != nil {
		t.Fatalf("defer failed: %v", err)
	}

	if task.Run(context.Background()) {
		t.Fatalf("failed work must report failure")
	}

	names := api.callNames()
	// 작업이 실패해도 사용자는 편집된 오류 안내를 받는다
	if len(names) != 2 || names[1] != "edit" {
		t.Fatalf("failed work must still complete with a notice: %v", names)
	}
	if api.calls[1].edit.Content == nil || *api.calls[1].edit.Content == "" {
		t.Fatalf("error notice must not be empty")
	}
}

func TestMessageSetsEphemeralFlag(t *testing.T) {
	api := &fakeAPI{}
	responder := newTestResponder(api)

	err := responder.Message(context.Background(), testInteraction(), &domain.Reply{
		Content:   "only you can see this",
		Ephemeral: true,
	})
	if err != nil {
		t.Fatalf("message failed: %v", err)
	}
	if api.calls[0].resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("ephemeral flag missing")
	}
}
