package coverart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"log/slog"

	"github.com/goccy/go-json"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Provider: MusicBrainz 릴리스 검색 + Cover Art Archive를 커버 아트 소스로 노출하는
// 어댑터. 아카이브 소스이므로 리졸버에서 항상 최우선 점수를 받는다.
type Provider struct {
	httpClient *http.Client
	mbBaseURL  string
	caaBaseURL string
	userAgent  string
	logger     *slog.Logger
}

// NewProvider: Cover Art Archive 프로바이더를 생성한다.
func NewProvider(httpClient *http.Client, logger *slog.Logger) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.RequestTimeout}
	}
	return &Provider{
		httpClient: httpClient,
		mbBaseURL:  constants.APIConfig.MusicBrainzBaseURL,
		caaBaseURL: constants.APIConfig.CoverArtBaseURL,
		userAgent:  constants.MusicBrainzUserAgent,
		logger:     logger,
	}
}

// Source: 이 프로바이더의 출처 식별자를 반환한다.
func (p *Provider) Source() domain.CoverSource {
	return domain.SourceCoverArt
}

type releaseSearchResponse struct {
	Releases []struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
	} `json:"releases"`
}

// Find: 릴리스를 검색하여 첫 매치의 Cover Art Archive front 이미지 URL을 만든다.
// 이미지 실존 여부는 검증하지 않는다. (사용 가능 판정은 리졸버의 몫)
func (p *Provider) Find(ctx context.Context, artist, album string) (string, []string, error) {
	searchQuery := fmt.Sprintf(`artist:%q AND release:%q`, artist, album)
	attempted := []string{fmt.Sprintf("%s - %s", artist, album)}

	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("fmt", "json")
	query.Set("limit", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.mbBaseURL+"/release/?"+query.Encode(), nil)
	if err != nil {
		return "", attempted, errors.NewAPIError("musicbrainz", "release_search", 0, err)
	}
	// User-Agent 미설정 시 MusicBrainz가 요청을 차단한다
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("musicbrainz_request_failed", slog.String("query", searchQuery), slog.Any("error", err))
		return "", attempted, errors.NewAPIError("musicbrainz", "release_search", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", attempted, errors.NewAPIError("musicbrainz", "release_search", resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var result releaseSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", attempted, errors.NewAPIError("musicbrainz", "release_search", resp.StatusCode, err)
	}

	for _, release := range result.Releases {
		if release.ID == "" {
			continue
		}
		return fmt.Sprintf("%s/release/%s/front-500", p.caaBaseURL, release.ID), attempted, nil
	}

	return "", attempted, errors.NewNoMatchError("coverart", attempted)
}
