package lastfm

import (
	"context"
	"fmt"
	"net/http"

	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Scraper: API 응답에 이미지가 비어 있을 때 앨범 페이지의 og:image 메타 태그를
// 읽어오는 백업 경로. API가 커버를 누락하는 오래된 앨범에서 종종 필요하다.
type Scraper struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewScraper: 새로운 앨범 페이지 스크레이퍼를 생성한다.
func NewScraper(httpClient *http.Client, logger *slog.Logger) *Scraper {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.RequestTimeout}
	}
	return &Scraper{httpClient: httpClient, logger: logger}
}

// CoverFromPage: 앨범 페이지 HTML에서 og:image URL을 추출한다. 없으면 빈 문자열.
func (s *Scraper) CoverFromPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.NewAPIError("lastfm", "scrape", 0, err)
	}
	req.Header.Set("User-Agent", constants.MusicBrainzUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("album_page_fetch_failed", slog.String("url", pageURL), slog.Any("error", err))
		return "", errors.NewAPIError("lastfm", "scrape", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewAPIError("lastfm", "scrape", resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.NewAPIError("lastfm", "scrape", resp.StatusCode, err)
	}

	cover, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	return cover, nil
}
