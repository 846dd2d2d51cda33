package domain

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ResponseKind 는 핸들러가 선택하는 응답 형태의 닫힌 집합이다.
// 디스패처는 이 집합을 exhaustive하게 분기하며, 새로운 형태 추가 시 분기도 함께 갱신해야 한다.
type ResponseKind int

// ResponseKind 상수 목록.
const (
	// ResponseMessage: 즉시 단일 메시지로 응답한다. (3초 제한 내 완료 가능한 빠른 명령)
	ResponseMessage ResponseKind = iota
	// ResponseUpdate: 컴포넌트 클릭에 대해 기존 메시지를 수정한다.
	ResponseUpdate
	// ResponseDeferred: 먼저 acknowledge를 보내고, 백그라운드 작업 완료 후 complete로 마무리한다.
	ResponseDeferred
)

// WorkFunc 는 deferred 응답의 백그라운드 작업이다.
// 핸들러가 HTTP 응답을 반환한 뒤 슈퍼바이저 위에서 실행되며, 반환값이 complete 페이로드가 된다.
type WorkFunc func(ctx context.Context) (*Reply, error)

// Reply 는 사용자에게 전달되는 최종 페이로드다. (텍스트, 임베드, 파일 첨부)
type Reply struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Files      []*discordgo.File
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Response 는 명령어 실행 결과로 선택된 응답 변형이다.
// Kind에 따라 Reply(즉시/수정) 또는 Work(deferred)가 사용된다.
type Response struct {
	Kind  ResponseKind
	Reply *Reply
	Work  WorkFunc
}

// NewMessageResponse: 즉시 메시지 응답을 생성한다.
func NewMessageResponse(reply *Reply) *Response {
	return &Response{Kind: ResponseMessage, Reply: reply}
}

// NewEphemeralResponse: 호출자에게만 보이는 즉시 메시지 응답을 생성한다.
func NewEphemeralResponse(content string) *Response {
	return &Response{Kind: ResponseMessage, Reply: &Reply{Content: content, Ephemeral: true}}
}

// NewUpdateResponse: 컴포넌트 클릭 대상 메시지를 수정하는 응답을 생성한다.
func NewUpdateResponse(reply *Reply) *Response {
	return &Response{Kind: ResponseUpdate, Reply: reply}
}

// NewDeferredResponse: acknowledge 후 백그라운드 작업으로 완료되는 응답을 생성한다.
func NewDeferredResponse(work WorkFunc) *Response {
	return &Response{Kind: ResponseDeferred, Work: work}
}
