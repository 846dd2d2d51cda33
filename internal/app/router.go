package app

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kapu/lastfm-discord-bot-go/internal/server"
)

// newHTTPServer: 라우트와 미들웨어를 구성하고 h2c 서버로 감싼다.
func newHTTPServer(c *Container) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(gin.Recovery())
	router.Use(server.AccessLog(c.Logger))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	publicKey, err := c.Config.Discord.PublicKeyBytes()
	if err != nil {
		// Load 단계에서 이미 검증되었으므로 도달하지 않는다
		panic(err)
	}

	router.POST("/interactions",
		server.VerifySignature(publicKey, c.Logger),
		server.Interactions(c.Bot, c.Logger),
	)
	router.GET("/health", c.Health.Handler)

	return server.NewH2CServer(c.Config.Server.Port, router)
}
