package command

import (
	"context"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/activity"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/chart"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/lastfm"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/registry"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/resolver"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/spotify"
)

// Command 는 슬래시 명령어 하나의 구현이다.
// Execute는 응답 변형(즉시/수정/deferred)을 선택해 반환하며, 전송은 디스패처가 담당한다.
type Command interface {
	Definition() *discordgo.ApplicationCommand
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, opts Options) (*domain.Response, error)
}

// ComponentHandler 는 메시지 컴포넌트(버튼) 클릭 처리기다.
// custom_id의 "<prefix>:" 접두사로 라우팅된다.
type ComponentHandler interface {
	Prefix() string
	Handle(ctx context.Context, cmdCtx *domain.CommandContext, customID string) (*domain.Response, error)
}

// Dependencies 는 명령어 구현이 공유하는 서비스 묶음이다.
type Dependencies struct {
	Users     *registry.Service
	Lastfm    *lastfm.Client
	Resolver  *resolver.Service
	Chart     *chart.Renderer
	Spotify   *spotify.Service // nil이면 비활성화
	Formatter *adapter.Formatter
	Activity  *activity.Logger
	Logger    *slog.Logger
}

// Options 는 인터랙션 페이로드의 옵션 목록을 이름으로 조회하는 뷰다.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// ParseOptions: 인터랙션 데이터의 옵션 목록을 맵으로 변환한다.
func ParseOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	parsed := make(Options, len(opts))
	for _, opt := range opts {
		parsed[opt.Name] = opt
	}
	return parsed
}

// String: 문자열 옵션 값을 반환한다. 없으면 빈 문자열.
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Int: 정수 옵션 값을 반환한다. 없으면 fallback.
func (o Options) Int(name string, fallback int) int {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue())
	}
	return fallback
}

// Bool: 불리언 옵션 값을 반환한다. 없으면 false.
func (o Options) Bool(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}
