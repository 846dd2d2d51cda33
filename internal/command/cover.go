package command

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/resolver"
)

// CoverCommand: 앨범 커버 아트를 찾아 보여준다.
// 기본은 순차 모드, hq 플래그가 켜지면 전 소스 병렬 조회 후 최고 점수를 고른다.
type CoverCommand struct {
	deps *Dependencies
}

// NewCoverCommand: cover 명령어를 생성한다.
func NewCoverCommand(deps *Dependencies) *CoverCommand {
	return &CoverCommand{deps: deps}
}

// Definition: 명령어 정의를 반환한다.
func (c *CoverCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "cover",
		Description: "Find album cover art",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "search",
				Description: "Free-text album search",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "artist",
				Description: "Artist name (defaults to your current track)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "album",
				Description: "Album name (defaults to your current track)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "hq",
				Description: "Query every source and pick the best quality",
			},
		},
	}
}

// Execute: search 질의가 있으면 앨범 검색으로 대상 앨범을 정하고,
// 아티스트/앨범 미지정 시 등록된 계정의 최근 트랙에서 가져온다.
func (c *CoverCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, opts Options) (*domain.Response, error) {
	search := strings.TrimSpace(opts.String("search"))
	artist := strings.TrimSpace(opts.String("artist"))
	album := strings.TrimSpace(opts.String("album"))
	hq := opts.Bool("hq")

	var lastfmUser string
	if search == "" && (artist == "" || album == "") {
		user, found, err := c.deps.Users.Lookup(ctx, cmdCtx.UserID)
		if err != nil {
			return nil, err
		}
		if !found {
			return domain.NewEphemeralResponse(adapter.MsgNotRegistered), nil
		}
		lastfmUser = user.LastfmUser
	}

	return domain.NewDeferredResponse(func(ctx context.Context) (*domain.Reply, error) {
		if search != "" {
			matches, err := c.deps.Lastfm.AlbumSearch(ctx, search, 1)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				embed := c.deps.Formatter.CoverNotFoundEmbed([]string{search})
				return &domain.Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
			}
			artist = matches[0].Artist
			album = matches[0].Name
		}

		if artist == "" || album == "" {
			tracks, err := c.deps.Lastfm.RecentTracks(ctx, lastfmUser, 1)
			if err != nil {
				return nil, err
			}
			if len(tracks) == 0 || tracks[0].Album == "" {
				return c.deps.Formatter.ErrorReply(adapter.MsgNoRecentTracks), nil
			}
			artist = tracks[0].Artist
			album = tracks[0].Album
		}

		var result *resolver.Result
		var err error
		if hq {
			result, err = c.deps.Resolver.ResolveBest(ctx, artist, album)
		} else {
			result, err = c.deps.Resolver.ResolveSequential(ctx, artist, album)
		}
		if err != nil {
			return nil, err
		}

		if result.Candidate == nil {
			embed := c.deps.Formatter.CoverNotFoundEmbed(result.Attempted)
			return &domain.Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
		}

		embed := c.deps.Formatter.CoverEmbed(artist, album, result.Candidate)
		return &domain.Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
	}), nil
}
