package itunes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Provider: iTunes Search API를 커버 아트 소스로 노출하는 어댑터.
// 인증이 필요 없는 공개 검색 엔드포인트를 사용한다.
type Provider struct {
	httpClient *http.Client
	searchURL  string
	logger     *slog.Logger
}

// NewProvider: iTunes 커버 아트 프로바이더를 생성한다.
func NewProvider(httpClient *http.Client, logger *slog.Logger) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.RequestTimeout}
	}
	return &Provider{
		httpClient: httpClient,
		searchURL:  constants.APIConfig.ItunesSearchURL,
		logger:     logger,
	}
}

// Source: 이 프로바이더의 출처 식별자를 반환한다.
func (p *Provider) Source() domain.CoverSource {
	return domain.SourceItunes
}

type searchResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		ArtistName     string `json:"artistName"`
		CollectionName string `json:"collectionName"`
		ArtworkURL100  string `json:"artworkUrl100"`
	} `json:"results"`
}

// Find: 아티스트/앨범 검색 결과 중 첫 매치의 아트워크 URL을 고해상도로 변환해 반환한다.
func (p *Provider) Find(ctx context.Context, artist, album string) (string, []string, error) {
	term := strings.TrimSpace(artist + " " + album)
	attempted := []string{term}

	query := url.Values{}
	query.Set("term", term)
	query.Set("entity", "album")
	query.Set("limit", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", attempted, errors.NewAPIError("itunes", "search", 0, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("itunes_request_failed", slog.String("term", term), slog.Any("error", err))
		return "", attempted, errors.NewAPIError("itunes", "search", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", attempted, errors.NewAPIError("itunes", "search", resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", attempted, errors.NewAPIError("itunes", "search", resp.StatusCode, err)
	}

	for _, item := range result.Results {
		if item.ArtworkURL100 == "" {
			continue
		}
		return UpscaleArtwork(item.ArtworkURL100), attempted, nil
	}

	return "", attempted, errors.NewNoMatchError("itunes", attempted)
}

// UpscaleArtwork: 100x100 썸네일 URL을 600x600 변형으로 바꾼다.
// iTunes CDN은 경로의 치수 토큰만 바꾸면 더 큰 변형을 내려준다.
func UpscaleArtwork(artworkURL string) string {
	return strings.Replace(artworkURL, "100x100bb", "600x600bb", 1)
}
