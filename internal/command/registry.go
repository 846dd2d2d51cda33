package command

import (
	"strings"

	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/util"
)

// Registry 는 명령어와 컴포넌트 핸들러의 이름 기반 저장소다.
type Registry struct {
	commands   map[string]Command
	components []ComponentHandler
	logger     *slog.Logger
}

// NewRegistry: 빈 레지스트리를 생성한다.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		logger:   logger,
	}
}

// Register: 명령어를 등록한다. 같은 이름이 이미 있으면 덮어쓴다.
func (r *Registry) Register(cmds ...Command) {
	for _, cmd := range cmds {
		name := util.Normalize(cmd.Definition().Name)
		r.commands[name] = cmd
		r.logger.Debug("command_registered", slog.String("name", name))
	}
}

// RegisterComponent: 컴포넌트 핸들러를 등록한다.
func (r *Registry) RegisterComponent(handlers ...ComponentHandler) {
	r.components = append(r.components, handlers...)
}

// Get: 이름으로 명령어를 조회한다.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[util.Normalize(name)]
	return cmd, ok
}

// GetComponent: custom_id의 접두사로 컴포넌트 핸들러를 조회한다.
func (r *Registry) GetComponent(customID string) (ComponentHandler, bool) {
	for _, handler := range r.components {
		if strings.HasPrefix(customID, handler.Prefix()+":") {
			return handler, true
		}
	}
	return nil, false
}

// Definitions: 전체 명령어 정의 목록을 반환한다. (명령어 등록 API 호출용)
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		defs = append(defs, cmd.Definition())
	}
	return defs
}
