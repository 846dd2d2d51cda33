package command

import (
	"context"
	"strings"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// NowPlayingCommand: 현재 재생 중(또는 마지막) 트랙을 보여준다.
// 외부 API를 여러 번 호출하므로 deferred로 응답한다.
type NowPlayingCommand struct {
	deps *Dependencies
}

// NewNowPlayingCommand: fm 명령어를 생성한다.
func NewNowPlayingCommand(deps *Dependencies) *NowPlayingCommand {
	return &NowPlayingCommand{deps: deps}
}

// Definition: 명령어 정의를 반환한다.
func (c *NowPlayingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "fm",
		Description: "Show what you are listening to right now",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "user",
				Description: "Last.fm username (defaults to your registered account)",
			},
		},
	}
}

// Execute: 등록 확인은 acknowledge 전에 끝내고, 나머지는 백그라운드에서 처리한다.
// user 옵션이 주어지면 등록 여부와 무관하게 해당 계정을 조회한다.
func (c *NowPlayingCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, opts Options) (*domain.Response, error) {
	lastfmUser := strings.TrimSpace(opts.String("user"))
	if lastfmUser == "" {
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
		tracks, err := c.deps.Lastfm.RecentTracks(ctx, lastfmUser, 1)
		if err != nil {
			return nil, err
		}
		if len(tracks) == 0 {
			return c.deps.Formatter.ErrorReply(adapter.MsgNoRecentTracks), nil
		}
		track := tracks[0]

		// 커버는 순차 모드로 해석한다. 실패해도 임베드는 내보낸다.
		coverURL := ""
		if track.Album != "" {
			result, err := c.deps.Resolver.ResolveSequential(ctx, track.Artist, track.Album)
			if err == nil && result.Candidate != nil {
				coverURL = result.Candidate.URL
			}
		}

		spotifyURL := ""
		if c.deps.Spotify != nil {
			spotifyURL, err = c.deps.Spotify.TrackURL(ctx, track.Artist, track.Title)
			if err != nil {
				// 링크 보강 실패는 무시한다
				c.deps.Logger.Debug("spotify_enrich_failed", slog.Any("error", err))
				spotifyURL = ""
			}
		}

		embed := c.deps.Formatter.NowPlayingEmbed(lastfmUser, &track, coverURL, spotifyURL)
		return &domain.Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
	}), nil
}
