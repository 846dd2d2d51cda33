package lastfm

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"log/slog"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Client: Last.fm API 클라이언트. 모든 호출은 레이트 리미터를 거친다.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient: 새로운 Last.fm API 클라이언트를 생성한다.
func NewClient(apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.RequestTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    constants.APIConfig.LastfmBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(constants.LastfmRateLimit.Interval), constants.LastfmRateLimit.Burst),
		logger:     logger,
	}
}

// lfImage: Last.fm 응답의 이미지 엔트리 ("#text" 키에 URL)
type lfImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// pickImage: 크기 우선순위(extralarge > large > 마지막 엔트리)로 이미지 URL을 고른다.
func pickImage(images []lfImage) string {
	for _, size := range []string{"extralarge", "large"} {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	for i := len(images) - 1; i >= 0; i-- {
		if images[i].URL != "" {
			return images[i].URL
		}
	}
	return ""
}

// apiEnvelope: Last.fm은 오류도 HTTP 200으로 내려주므로 본문의 error 필드를 본다.
type apiEnvelope struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// 코드 6 = 파라미터 불일치 (존재하지 않는 아티스트/앨범/사용자)
const errCodeNotFound = 6

var errNotFound = stderrors.New("lastfm: no match")

// do: API 메서드를 단일 시도로 호출하고 응답을 dest에 디코딩한다. 재시도 없음.
func (c *Client) do(ctx context.Context, method string, params url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.NewAPIError("lastfm", method, 0, err)
	}

	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return errors.NewAPIError("lastfm", method, 0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("lastfm_request_failed", slog.String("method", method), slog.Any("error", err))
		return errors.NewAPIError("lastfm", method, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAPIError("lastfm", method, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewAPIError("lastfm", method, resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != 0 {
		if envelope.Error == errCodeNotFound {
			return errNotFound
		}
		return errors.NewAPIError("lastfm", method, resp.StatusCode,
			fmt.Errorf("api error %d: %s", envelope.Error, envelope.Message))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.NewAPIError("lastfm", method, resp.StatusCode, err)
	}
	return nil
}

type recentTracksResponse struct {
	RecentTracks struct {
		Track []struct {
			Artist struct {
				Text string `json:"#text"`
			} `json:"artist"`
			Album struct {
				Text string `json:"#text"`
			} `json:"album"`
			Name  string    `json:"name"`
			URL   string    `json:"url"`
			Image []lfImage `json:"image"`
			Attr  *struct {
				NowPlaying string `json:"nowplaying"`
			} `json:"@attr"`
		} `json:"track"`
	} `json:"recenttracks"`
}

// RecentTracks: 사용자의 최근 스크로블 목록을 조회한다.
func (c *Client) RecentTracks(ctx context.Context, user string, limit int) ([]domain.Track, error) {
	params := url.Values{}
	params.Set("user", user)
	params.Set("limit", strconv.Itoa(limit))

	var resp recentTracksResponse
	if err := c.do(ctx, "user.getrecenttracks", params, &resp); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(resp.RecentTracks.Track))
	for _, t := range resp.RecentTracks.Track {
		tracks = append(tracks, domain.Track{
			Artist:     t.Artist.Text,
			Album:      t.Album.Text,
			Title:      t.Name,
			URL:        t.URL,
			ImageURL:   pickImage(t.Image),
			NowPlaying: t.Attr != nil && t.Attr.NowPlaying == "true",
		})
	}
	return tracks, nil
}

type topAlbumsResponse struct {
	TopAlbums struct {
		Album []struct {
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
			Name      string    `json:"name"`
			PlayCount string    `json:"playcount"`
			Image     []lfImage `json:"image"`
		} `json:"album"`
	} `json:"topalbums"`
}

// TopAlbums: 기간별 상위 앨범 집계를 조회한다.
func (c *Client) TopAlbums(ctx context.Context, user string, period domain.ChartPeriod, limit int) ([]domain.TopAlbum, error) {
	params := url.Values{}
	params.Set("user", user)
	params.Set("period", string(period))
	params.Set("limit", strconv.Itoa(limit))

	var resp topAlbumsResponse
	if err := c.do(ctx, "user.gettopalbums", params, &resp); err != nil {
		return nil, err
	}

	albums := make([]domain.TopAlbum, 0, len(resp.TopAlbums.Album))
	for _, a := range resp.TopAlbums.Album {
		playCount, _ := strconv.Atoi(a.PlayCount)
		albums = append(albums, domain.TopAlbum{
			Artist:    a.Artist.Name,
			Name:      a.Name,
			PlayCount: playCount,
			ImageURL:  pickImage(a.Image),
		})
	}
	return albums, nil
}

type albumSearchResponse struct {
	Results struct {
		AlbumMatches struct {
			Album []struct {
				Name   string    `json:"name"`
				Artist string    `json:"artist"`
				URL    string    `json:"url"`
				Image  []lfImage `json:"image"`
			} `json:"album"`
		} `json:"albummatches"`
	} `json:"results"`
}

// AlbumSearch: 자유 텍스트 질의로 앨범을 검색한다. 매치가 없으면 빈 슬라이스를 반환한다.
func (c *Client) AlbumSearch(ctx context.Context, query string, limit int) ([]domain.AlbumInfo, error) {
	params := url.Values{}
	params.Set("album", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp albumSearchResponse
	if err := c.do(ctx, "album.search", params, &resp); err != nil {
		if stderrors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	albums := make([]domain.AlbumInfo, 0, len(resp.Results.AlbumMatches.Album))
	for _, a := range resp.Results.AlbumMatches.Album {
		albums = append(albums, domain.AlbumInfo{
			Artist:   a.Artist,
			Name:     a.Name,
			URL:      a.URL,
			ImageURL: pickImage(a.Image),
		})
	}
	return albums, nil
}

type albumInfoResponse struct {
	Album struct {
		Name   string    `json:"name"`
		Artist string    `json:"artist"`
		URL    string    `json:"url"`
		Image  []lfImage `json:"image"`
	} `json:"album"`
}

// AlbumInfo: 아티스트/앨범명으로 앨범 단건을 조회한다. 매치가 없으면 nil을 반환한다.
func (c *Client) AlbumInfo(ctx context.Context, artist, album string) (*domain.AlbumInfo, error) {
	params := url.Values{}
	params.Set("artist", artist)
	params.Set("album", album)
	params.Set("autocorrect", "1")

	var resp albumInfoResponse
	if err := c.do(ctx, "album.getinfo", params, &resp); err != nil {
		// 매치 없음은 호출 실패가 아니다.
		if stderrors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if resp.Album.Name == "" {
		return nil, nil
	}

	return &domain.AlbumInfo{
		Artist:   resp.Album.Artist,
		Name:     resp.Album.Name,
		URL:      resp.Album.URL,
		ImageURL: pickImage(resp.Album.Image),
	}, nil
}
