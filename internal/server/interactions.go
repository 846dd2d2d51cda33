package server

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// InteractionHandler 는 검증된 인터랙션 한 건을 처리한다. (bot.Bot이 구현)
type InteractionHandler interface {
	HandleInteraction(ctx context.Context, interaction *discordgo.Interaction) error
}

// Interactions: POST /interactions 핸들러.
// ping은 즉시 pong으로 응답하고, 나머지는 디스패처에 넘긴 뒤 202를 반환한다.
// 실제 사용자 응답은 콜백/웹훅 REST 호출로 전달되므로 본문에는 담지 않는다.
func Interactions(handler InteractionHandler, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := RawBody(c)
		if !ok {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		var interaction discordgo.Interaction
		if err := interaction.UnmarshalJSON(body); err != nil {
			logger.Warn("interaction_decode_failed", slog.Any("error", err))
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if interaction.Type == discordgo.InteractionPing {
			c.Data(http.StatusOK, "application/json", pongPayload())
			return
		}

		if err := handler.HandleInteraction(c.Request.Context(), &interaction); err != nil {
			logger.Error("interaction_handling_failed",
				slog.String("interaction_id", interaction.ID),
				slog.Any("error", err),
			)
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Status(http.StatusAccepted)
	}
}

func pongPayload() []byte {
	payload, _ := json.Marshal(discordgo.InteractionResponse{
		Type: discordgo.InteractionResponsePong,
	})
	return payload
}
