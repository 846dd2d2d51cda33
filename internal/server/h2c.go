package server

import (
	"fmt"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
)

// NewH2CServer: TLS 없이 HTTP/2(h2c)를 지원하는 HTTP 서버를 만든다.
// TLS 종료는 앞단 프록시가 담당한다.
func NewH2CServer(port int, handler http.Handler) *http.Server {
	h2s := &http2.Server{}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h2c.NewHandler(handler, h2s),
		ReadHeaderTimeout: constants.ServerTimeout.ReadHeader,
		ReadTimeout:       constants.ServerTimeout.Read,
		WriteTimeout:      constants.ServerTimeout.Write,
		IdleTimeout:       constants.ServerTimeout.Idle,
		MaxHeaderBytes:    constants.ServerTimeout.MaxHeaderBytes,
	}
}
