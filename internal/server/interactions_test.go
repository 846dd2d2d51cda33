package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type stubHandler struct {
	received []*discordgo.Interaction
	err      error
}

func (s *stubHandler) HandleInteraction(_ context.Context, interaction *discordgo.Interaction) error {
	s.received = append(s.received, interaction)
	return s.err
}

// rawBodyStub: 서명 검증을 건너뛰고 원문만 컨텍스트에 넣는 테스트용 미들웨어
func rawBodyStub() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Set(rawBodyKey, body)
		c.Next()
	}
}

func newInteractionsRouter(t *testing.T, handler InteractionHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.POST("/interactions", rawBodyStub(), Interactions(handler, logger))
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInteractionsAnswersPingInline(t *testing.T) {
	handler := &stubHandler{}
	router := newInteractionsRouter(t, handler)

	w := postJSON(router, `{"id":"1","type":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for ping, got %d", w.Code)
	}

	var resp discordgo.InteractionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid pong payload: %v", err)
	}
	if resp.Type != discordgo.InteractionResponsePong {
		t.Fatalf("expected pong, got type %d", resp.Type)
	}
	if len(handler.received) != 0 {
		t.Fatalf("ping must not reach the dispatcher")
	}
}

func TestInteractionsDispatchesCommands(t *testing.T) {
	handler := &stubHandler{}
	router := newInteractionsRouter(t, handler)

	w := postJSON(router, `{
		"id": "int-1",
		"application_id": "app-1",
		"token": "tok",
		"type": 2,
		"data": {"id": "cmd-1", "name": "fm"}
	}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 after dispatch, got %d", w.Code)
	}
	if len(handler.received) != 1 {
		t.Fatalf("dispatcher must receive the interaction")
	}
	if handler.received[0].ApplicationCommandData().Name != "fm" {
		t.Fatalf("unexpected command data: %+v", handler.received[0].Data)
	}
}

func TestInteractionsRejectsGarbage(t *testing.T) {
	handler := &stubHandler{}
	router := newInteractionsRouter(t, handler)

	w := postJSON(router, `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestInteractionsSurfacesHandlerFailure(t *testing.T) {
	handler := &stubHandler{err: context.DeadlineExceeded}
	router := newInteractionsRouter(t, handler)

	w := postJSON(router, `{"id":"int-1","type":2,"data":{"id":"c","name":"fm"}}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when handling fails, got %d", w.Code)
	}
}
