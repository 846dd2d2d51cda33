package domain

// RegisteredUser 는 Discord 사용자와 Last.fm 계정의 일대일 매핑이다.
// /register로 생성되고 재등록 시 덮어써지며, 이 시스템에서는 삭제되지 않는다.
type RegisteredUser struct {
	DiscordID  string `json:"discord_id"`
	LastfmUser string `json:"lastfm_user"`
}
