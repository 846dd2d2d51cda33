package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// HelpCommand: 등록된 전체 명령어 목록을 보여준다.
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand: help 명령어를 생성한다.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

// Definition: 명령어 정의를 반환한다.
func (c *HelpCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "List available commands",
	}
}

// Execute: 명령어 이름/설명 목록을 호출자에게만 보이는 임베드로 즉시 응답한다.
func (c *HelpCommand) Execute(_ context.Context, _ *domain.CommandContext, _ Options) (*domain.Response, error) {
	defs := c.registry.Definitions()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	var lines []string
	for _, def := range defs {
		lines = append(lines, fmt.Sprintf("`/%s` — %s", def.Name, def.Description))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Description: strings.Join(lines, "\n"),
		Color:       constants.EmbedColor.Default,
	}
	return domain.NewMessageResponse(&domain.Reply{Embeds: []*discordgo.MessageEmbed{embed}, Ephemeral: true}), nil
}
