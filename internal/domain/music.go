package domain

// Track 는 Last.fm 스크로블 한 건의 트랙 정보다.
type Track struct {
	Artist     string
	Album      string
	Title      string
	URL        string
	ImageURL   string // Last.fm이 내려준 커버 이미지 (placeholder일 수 있음)
	NowPlaying bool
}

// TopAlbum 는 기간별 상위 앨범 집계 한 건이다.
type TopAlbum struct {
	Artist    string
	Name      string
	PlayCount int
	ImageURL  string
}

// AlbumInfo 는 앨범 단건 조회 결과다.
type AlbumInfo struct {
	Artist   string
	Name     string
	URL      string
	ImageURL string
}

// ChartPeriod 는 Last.fm 집계 기간이다.
type ChartPeriod string

// ChartPeriod 상수 목록. (Last.fm API의 period 파라미터 값과 일치)
const (
	PeriodWeek    ChartPeriod = "7day"
	PeriodMonth   ChartPeriod = "1month"
	PeriodQuarter ChartPeriod = "3month"
	PeriodHalf    ChartPeriod = "6month"
	PeriodYear    ChartPeriod = "12month"
	PeriodOverall ChartPeriod = "overall"
)

// ParseChartPeriod: 사용자 입력을 집계 기간으로 변환한다. 알 수 없는 값은 overall로 처리한다.
func ParseChartPeriod(s string) ChartPeriod {
	switch s {
	case "7day", "week", "weekly":
		return PeriodWeek
	case "1month", "month", "monthly":
		return PeriodMonth
	case "3month", "quarter":
		return PeriodQuarter
	case "6month", "half":
		return PeriodHalf
	case "12month", "year", "yearly":
		return PeriodYear
	default:
		return PeriodOverall
	}
}
