package command

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// RegisterCommand: Discord 사용자를 Last.fm 계정에 연결한다.
// 외부 API 호출이 없으므로 즉시(ephemeral) 응답한다.
type RegisterCommand struct {
	deps *Dependencies
}

// NewRegisterCommand: register 명령어를 생성한다.
func NewRegisterCommand(deps *Dependencies) *RegisterCommand {
	return &RegisterCommand{deps: deps}
}

// Definition: 명령어 정의를 반환한다.
func (c *RegisterCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "register",
		Description: "Link your Last.fm account",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "username",
				Description: "Your Last.fm username",
				Required:    true,
			},
		},
	}
}

// Execute: 매핑을 저장하고 호출자에게만 보이는 확인 메시지를 보낸다.
func (c *RegisterCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, opts Options) (*domain.Response, error) {
	username := strings.TrimSpace(opts.String("username"))
	if username == "" {
		return domain.NewEphemeralResponse(adapter.MsgRegisterUsage), nil
	}

	_, existed, err := c.deps.Users.Lookup(ctx, cmdCtx.UserID)
	if err != nil {
		return nil, err
	}
	if err := c.deps.Users.Register(ctx, cmdCtx.UserID, username); err != nil {
		return nil, err
	}

	message := adapter.MsgRegisterSuccess
	if existed {
		message = adapter.MsgRegisterOverwrite
	}
	return domain.NewEphemeralResponse(message), nil
}
