package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/adapter"
	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/service/chart"
)

// ChartCommand: 기간별 상위 앨범을 커버 그리드 이미지로 렌더링한다.
type ChartCommand struct {
	deps *Dependencies
}

// NewChartCommand: chart 명령어를 생성한다.
func NewChartCommand(deps *Dependencies) *ChartCommand {
	return &ChartCommand{deps: deps}
}

// Definition: 명령어 정의를 반환한다.
func (c *ChartCommand) Definition() *discordgo.ApplicationCommand {
	minSize := float64(constants.ChartConfig.MinGridSize)
	return &discordgo.ApplicationCommand{
		Name:        "chart",
		Description: "Render your top albums as a cover grid",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "period",
				Description: "Aggregation period",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Last 7 days", Value: "7day"},
					{Name: "Last month", Value: "1month"},
					{Name: "Last 3 months", Value: "3month"},
					{Name: "Last 6 months", Value: "6month"},
					{Name: "Last 12 months", Value: "12month"},
					{Name: "All time", Value: "overall"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "size",
				Description: "Grid size (2-5)",
				MinValue:    &minSize,
				MaxValue:    float64(constants.ChartConfig.MaxGridSize),
			},
		},
	}
}

// Execute: 상위 앨범을 조회하고 그리드를 렌더링해 파일로 첨부한다.
func (c *ChartCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, opts Options) (*domain.Response, error) {
	user, found, err := c.deps.Users.Lookup(ctx, cmdCtx.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.NewEphemeralResponse(adapter.MsgNotRegistered), nil
	}

	period := domain.ParseChartPeriod(opts.String("period"))
	gridSize := chart.ClampGridSize(opts.Int("size", 3))

	return domain.NewDeferredResponse(func(ctx context.Context) (*domain.Reply, error) {
		albums, err := c.deps.Lastfm.TopAlbums(ctx, user.LastfmUser, period, gridSize*gridSize)
		if err != nil {
			return nil, err
		}
		if len(albums) == 0 {
			return c.deps.Formatter.ErrorReply(adapter.MsgNoTopAlbums), nil
		}

		imageData, err := c.deps.Chart.Render(ctx, albums, gridSize)
		if err != nil {
			return nil, err
		}
		return c.deps.Formatter.ChartReply(user.LastfmUser, period, gridSize, imageData), nil
	}), nil
}
