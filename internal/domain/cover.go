package domain

// CoverSource 는 커버 아트 후보의 출처다.
type CoverSource string

// CoverSource 상수 목록.
const (
	// SourceLastfm: 1차 메타데이터 서비스 (스크로블 서비스)
	SourceLastfm CoverSource = "lastfm"
	// SourceItunes: 2차 카탈로그 검색
	SourceItunes CoverSource = "itunes"
	// SourceCoverArt: 아카이브 레지스트리 (MusicBrainz + Cover Art Archive)
	SourceCoverArt CoverSource = "coverart"
)

// CoverCandidate 는 사용 가능 판정을 통과한 커버 아트 후보다.
// Score는 아카이브 소스의 고정 상수 또는 URL의 픽셀 치수 토큰에서 유도된다.
type CoverCandidate struct {
	URL    string
	Source CoverSource
	Score  int
}
