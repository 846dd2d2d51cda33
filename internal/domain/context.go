package domain

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// CommandContext 는 하나의 인터랙션을 처리하는 동안 유지되는 호출 컨텍스트다.
// Token은 follow-up 편집에 쓰이는 continuation token이다.
type CommandContext struct {
	InteractionID string
	AppID         string
	Token         string
	UserID        string
	UserName      string
	ChannelID     string
	GuildID       string
	Timestamp     time.Time
}

// NewCommandContext: Discord 인터랙션으로부터 호출 컨텍스트를 생성한다.
// 서버(guild) 호출은 Member.User, DM 호출은 User 필드에 사용자 정보가 담긴다.
func NewCommandContext(i *discordgo.Interaction) *CommandContext {
	ctx := &CommandContext{
		InteractionID: i.ID,
		AppID:         i.AppID,
		Token:         i.Token,
		ChannelID:     i.ChannelID,
		GuildID:       i.GuildID,
		Timestamp:     time.Now(),
	}

	if i.Member != nil && i.Member.User != nil {
		ctx.UserID = i.Member.User.ID
		ctx.UserName = i.Member.User.Username
	} else if i.User != nil {
		ctx.UserID = i.User.ID
		ctx.UserName = i.User.Username
	}

	return ctx
}
