package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kapu/lastfm-discord-bot-go/internal/service/system"
)

// Pinger: 헬스 체크가 확인하는 외부 의존성 (KV 스토어)
type Pinger interface {
	IsConnected(ctx context.Context) bool
}

// Service: 프로세스 상태와 의존성 연결 상태를 보고한다.
type Service struct {
	kv      Pinger
	version string
}

// NewService: 헬스 체크 서비스를 생성한다.
func NewService(kv Pinger, version string) *Service {
	return &Service{kv: kv, version: version}
}

type response struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Time    string        `json:"time"`
	KVStore string        `json:"kv_store"`
	System  *system.Stats `json:"system"`
}

// Handler: GET /health 핸들러. KV 연결이 끊겨 있으면 503을 반환한다.
func (s *Service) Handler(c *gin.Context) {
	kvStatus := "ok"
	status := "ok"
	code := http.StatusOK

	if s.kv != nil && !s.kv.IsConnected(c.Request.Context()) {
		kvStatus = "down"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, response{
		Status:  status,
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
		KVStore: kvStatus,
		System:  system.Collect(),
	})
}
