package adapter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/util"
)

// Formatter: 도메인 결과를 Discord 임베드/컴포넌트로 변환한다.
type Formatter struct{}

// NewFormatter: 포매터를 생성한다.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NowPlayingEmbed: 현재 재생(또는 마지막 스크로블) 트랙 임베드를 만든다.
// spotifyURL이 비어 있지 않으면 링크 필드를 추가한다.
func (f *Formatter) NowPlayingEmbed(lastfmUser string, track *domain.Track, coverURL, spotifyURL string) *discordgo.MessageEmbed {
	title := "Last scrobble"
	if track.NowPlaying {
		title = "Now playing"
	}

	description := fmt.Sprintf("**%s**\nby %s", util.TruncateString(track.Title, 256), track.Artist)
	if track.Album != "" {
		description += fmt.Sprintf("\non *%s*", track.Album)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		URL:         track.URL,
		Description: description,
		Color:       constants.EmbedColor.Default,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Last.fm: %s", lastfmUser),
		},
	}
	if coverURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: coverURL}
	}
	if spotifyURL != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Listen",
			Value: fmt.Sprintf("[Spotify](%s)", spotifyURL),
		})
	}
	return embed
}

// CoverEmbed: 커버 아트 결과 임베드를 만든다. 출처는 푸터에 표기한다.
func (f *Formatter) CoverEmbed(artist, album string, candidate *domain.CoverCandidate) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s — %s", artist, album),
		Color: constants.EmbedColor.Default,
		Image: &discordgo.MessageEmbedImage{URL: candidate.URL},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Source: %s", sourceLabel(candidate.Source)),
		},
	}
}

// CoverNotFoundEmbed: 전 소스 실패 시 시도한 표기 목록을 담은 임베드를 만든다.
func (f *Formatter) CoverNotFoundEmbed(attempted []string) *discordgo.MessageEmbed {
	description := "None of the sources had usable cover art."
	if len(attempted) > 0 {
		description += "\n\nSearched for:\n"
		for _, form := range attempted {
			description += fmt.Sprintf("• %s\n", form)
		}
	}
	return &discordgo.MessageEmbed{
		Title:       MsgCoverNotFoundTitle,
		Description: strings.TrimRight(description, "\n"),
		Color:       constants.EmbedColor.Error,
	}
}

// ChartReply: 렌더링된 차트 이미지를 첨부 파일로 담은 응답을 만든다.
func (f *Formatter) ChartReply(lastfmUser string, period domain.ChartPeriod, gridSize int, imageData []byte) *domain.Reply {
	filename := "chart.jpg"
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Top albums — %s (%s)", lastfmUser, periodLabel(period)),
		Color: constants.EmbedColor.Default,
		Image: &discordgo.MessageEmbedImage{URL: "attachment://" + filename},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%dx%d grid", gridSize, gridSize),
		},
	}
	return &domain.Reply{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        filename,
			ContentType: "image/jpeg",
			Reader:      bytes.NewReader(imageData),
		}},
	}
}

// ErrorReply: 일반 오류 임베드 응답을 만든다.
func (f *Formatter) ErrorReply(message string) *domain.Reply {
	return &domain.Reply{
		Embeds: []*discordgo.MessageEmbed{{
			Description: message,
			Color:       constants.EmbedColor.Error,
		}},
	}
}

// CountdownReply: 남은 숫자와 감소 버튼을 담은 응답을 만든다. 0이면 버튼을 제거한다.
func (f *Formatter) CountdownReply(remaining int) *domain.Reply {
	if remaining <= 0 {
		return &domain.Reply{Content: MsgCountdownDone}
	}
	return &domain.Reply{
		Content: fmt.Sprintf("**%d**", remaining),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Count down",
						Style:    discordgo.PrimaryButton,
						CustomID: fmt.Sprintf("countdown:%d", remaining-1),
					},
				},
			},
		},
	}
}

func sourceLabel(source domain.CoverSource) string {
	switch source {
	case domain.SourceLastfm:
		return "Last.fm"
	case domain.SourceItunes:
		return "iTunes"
	case domain.SourceCoverArt:
		return "Cover Art Archive"
	default:
		return string(source)
	}
}

func periodLabel(period domain.ChartPeriod) string {
	switch period {
	case domain.PeriodWeek:
		return "last 7 days"
	case domain.PeriodMonth:
		return "last month"
	case domain.PeriodQuarter:
		return "last 3 months"
	case domain.PeriodHalf:
		return "last 6 months"
	case domain.PeriodYear:
		return "last 12 months"
	default:
		return "all time"
	}
}
