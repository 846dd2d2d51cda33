package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// CountdownCommand: 버튼 클릭으로 숫자를 줄여가는 카운트다운 메시지를 만든다.
// 각 클릭은 별도 인터랙션이며, 남은 값은 custom_id에 인코딩되어 전달된다.
type CountdownCommand struct {
	deps *Dependencies
}

// NewCountdownCommand: countdown 명령어를 생성한다.
func NewCountdownCommand(deps *Dependencies) *CountdownCommand {
	return &CountdownCommand{deps: deps}
}

// Definition: 명령어 정의를 반환한다.
func (c *CountdownCommand) Definition() *discordgo.ApplicationCommand {
	minStart := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        "countdown",
		Description: "Start a button countdown",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "start",
				Description: "Starting number",
				MinValue:    &minStart,
				MaxValue:    float64(constants.CountdownConfig.MaxStart),
			},
		},
	}
}

// Execute: 시작 숫자와 버튼을 담은 메시지로 즉시 응답한다.
func (c *CountdownCommand) Execute(_ context.Context, _ *domain.CommandContext, opts Options) (*domain.Response, error) {
	start := opts.Int("start", constants.CountdownConfig.DefaultStart)
	if start > constants.CountdownConfig.MaxStart {
		start = constants.CountdownConfig.MaxStart
	}
	if start < 1 {
		start = constants.CountdownConfig.DefaultStart
	}
	return domain.NewMessageResponse(c.deps.Formatter.CountdownReply(start)), nil
}

// Prefix: 컴포넌트 custom_id 접두사를 반환한다.
func (c *CountdownCommand) Prefix() string {
	return "countdown"
}

// Handle: 버튼 클릭을 처리해 기존 메시지를 감소된 값으로 수정한다.
func (c *CountdownCommand) Handle(_ context.Context, _ *domain.CommandContext, customID string) (*domain.Response, error) {
	raw := strings.TrimPrefix(customID, "countdown:")
	remaining, err := strconv.Atoi(raw)
	if err != nil || remaining < 0 {
		remaining = 0
	}
	return domain.NewUpdateResponse(c.deps.Formatter.CountdownReply(remaining)), nil
}
