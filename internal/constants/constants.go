package constants

import "time"

// APIConfig 는 외부 메타데이터 API 엔드포인트 및 타임아웃 설정이다.
var APIConfig = struct {
	LastfmBaseURL      string
	LastfmWebBaseURL   string
	ItunesSearchURL    string
	MusicBrainzBaseURL string
	CoverArtBaseURL    string
	SpotifyBaseURL     string
	SpotifyTokenURL    string
	RequestTimeout     time.Duration
}{
	LastfmBaseURL:      "https://ws.audioscrobbler.com/2.0/",
	LastfmWebBaseURL:   "https://www.last.fm",
	ItunesSearchURL:    "https://itunes.apple.com/search",
	MusicBrainzBaseURL: "https://musicbrainz.org/ws/2",
	CoverArtBaseURL:    "https://coverartarchive.org",
	SpotifyBaseURL:     "https://api.spotify.com/v1",
	SpotifyTokenURL:    "https://accounts.spotify.com/api/token",
	RequestTimeout:     10 * time.Second,
}

// MusicBrainzUserAgent: MusicBrainz/Cover Art Archive가 요구하는 식별 헤더 값.
// 미설정 시 403으로 차단되므로 모든 요청에 포함한다.
const MusicBrainzUserAgent = "lastfm-discord-bot-go/1.0 (+https://github.com/kapu/lastfm-discord-bot-go)"

// LastfmRateLimit 는 Last.fm API 호출 속도 제한 설정이다. (초당 5 요청)
var LastfmRateLimit = struct {
	Interval time.Duration
	Burst    int
}{
	Interval: 200 * time.Millisecond,
	Burst:    1,
}

// ResolverConfig 는 커버 아트 소스 선정 관련 설정이다.
var ResolverConfig = struct {
	ProbeTimeout  time.Duration // 이미지 존재 확인(HEAD) 타임아웃
	ArchivalScore int           // Cover Art Archive 결과의 고정 점수 (항상 최우선)
	UnscoredScore int           // 해상도 토큰이 없는 URL의 기본 점수
}{
	ProbeTimeout:  2500 * time.Millisecond,
	ArchivalScore: 3000,
	UnscoredScore: 1,
}

// KnownPlaceholders 는 Last.fm이 커버 아트 부재 시 내려주는 기본 별 이미지 URL 목록이다.
// 리졸버는 이 URL들과 정확히 일치하는 후보를 무조건 폐기한다.
var KnownPlaceholders = []string{
	"https://lastfm.freetls.fastly.net/i/u/300x300/2a96cbd8b46e442fc41c2b86b821562f.png",
	"https://lastfm.freetls.fastly.net/i/u/174s/2a96cbd8b46e442fc41c2b86b821562f.png",
	"https://lastfm.freetls.fastly.net/i/u/2a96cbd8b46e442fc41c2b86b821562f.png",
}

// InteractionConfig 는 Discord 인터랙션 응답 수명 관련 설정이다.
var InteractionConfig = struct {
	AckTimeout    time.Duration // 최초 응답(acknowledge) 마감 (플랫폼 3초 제한 내)
	TokenLifetime time.Duration // follow-up 토큰 유효 기간 (플랫폼 정의, 참고용)
}{
	AckTimeout:    2500 * time.Millisecond,
	TokenLifetime: 15 * time.Minute,
}

// ChartConfig 는 차트 그리드 렌더링 설정이다.
var ChartConfig = struct {
	TileSize        int
	MinGridSize     int
	MaxGridSize     int
	LabelFontSize   float64
	DownloadTimeout time.Duration
	MaxDownloads    int // 동시 커버 다운로드 상한
	JPEGQuality     int
}{
	TileSize:        300,
	MinGridSize:     2,
	MaxGridSize:     5,
	LabelFontSize:   16,
	DownloadTimeout: 8 * time.Second,
	MaxDownloads:    8,
	JPEGQuality:     85,
}

// CountdownConfig 는 카운트다운 명령어 설정이다.
var CountdownConfig = struct {
	DefaultStart int
	MaxStart     int
}{
	DefaultStart: 5,
	MaxStart:     30,
}

// ValkeyConfig 는 KV 스토어 연결 설정이다.
var ValkeyConfig = struct {
	ReadyTimeout      time.Duration
	DialTimeout       time.Duration
	ConnWriteTimeout  time.Duration
	BlockingPoolSize  int
	PipelineMultiplex int
	ScanCount         int64
}{
	ReadyTimeout:      5 * time.Second,
	DialTimeout:       3 * time.Second,
	ConnWriteTimeout:  3 * time.Second,
	BlockingPoolSize:  100,
	PipelineMultiplex: 4,
	ScanCount:         100,
}

// ServerTimeout 는 HTTP 서버 타임아웃 설정이다.
var ServerTimeout = struct {
	ReadHeader     time.Duration
	Read           time.Duration
	Write          time.Duration
	Idle           time.Duration
	MaxHeaderBytes int
}{
	ReadHeader:     5 * time.Second,
	Read:           10 * time.Second,
	Write:          30 * time.Second,
	Idle:           60 * time.Second,
	MaxHeaderBytes: 1 << 20,
}

// AppTimeout 는 애플리케이션 수명 주기 타임아웃이다.
var AppTimeout = struct {
	Build    time.Duration
	Shutdown time.Duration
}{
	Build:    30 * time.Second,
	Shutdown: 20 * time.Second,
}

// EmbedColor 는 Discord 임베드 색상 팔레트다.
var EmbedColor = struct {
	Default int
	Error   int
}{
	Default: 0xB90000, // Last.fm red
	Error:   0x808080,
}

// TransportConfig 는 외부 API용 HTTP Transport 설정이다.
// 동시 요청 시 커넥션 풀 고갈 방지를 위해 디폴트(MaxIdleConnsPerHost=2)보다 높게 설정한다.
var TransportConfig = struct {
	MaxConnsPerHost     int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}{
	MaxConnsPerHost:     50,
	MaxIdleConnsPerHost: 50,
	IdleConnTimeout:     30 * time.Second,
}
