package lastfm

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/internal/util"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Provider: Last.fm을 커버 아트 소스로 노출하는 어댑터.
// 원 표기로 먼저 조회하고, 결과가 없으면서 다이어크리틱이 있으면 제거형으로 한 번 더 시도한다.
type Provider struct {
	client  *Client
	scraper *Scraper
	logger  *slog.Logger
}

// NewProvider: Last.fm 커버 아트 프로바이더를 생성한다.
func NewProvider(client *Client, scraper *Scraper, logger *slog.Logger) *Provider {
	return &Provider{client: client, scraper: scraper, logger: logger}
}

// Source: 이 프로바이더의 출처 식별자를 반환한다.
func (p *Provider) Source() domain.CoverSource {
	return domain.SourceLastfm
}

// Find: 아티스트/앨범으로 커버 아트 URL 후보를 찾는다.
// attempted에는 실제로 시도한 표기 쌍이 순서대로 담긴다. (실패 보고용)
func (p *Provider) Find(ctx context.Context, artist, album string) (string, []string, error) {
	var attempted []string

	queries := [][2]string{{artist, album}}
	if util.HasDiacritics(artist) || util.HasDiacritics(album) {
		queries = append(queries, [2]string{util.StripDiacritics(artist), util.StripDiacritics(album)})
	}

	for _, q := range queries {
		attempted = append(attempted, fmt.Sprintf("%s - %s", q[0], q[1]))

		coverURL, err := p.lookup(ctx, q[0], q[1])
		if err != nil {
			return "", attempted, err
		}
		if coverURL != "" {
			return coverURL, attempted, nil
		}
	}

	return "", attempted, errors.NewNoMatchError("lastfm", attempted)
}

// lookup: 단일 표기 쌍 조회. API 이미지가 비어 있으면 앨범 페이지 스크레이핑으로 보강한다.
func (p *Provider) lookup(ctx context.Context, artist, album string) (string, error) {
	info, err := p.client.AlbumInfo(ctx, artist, album)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", nil
	}
	if info.ImageURL != "" {
		return info.ImageURL, nil
	}

	if p.scraper != nil && info.URL != "" {
		cover, err := p.scraper.CoverFromPage(ctx, info.URL)
		if err != nil {
			p.logger.Warn("album_page_scrape_failed",
				slog.String("artist", artist),
				slog.String("album", album),
				slog.Any("error", err),
			)
			return "", nil
		}
		return cover, nil
	}
	return "", nil
}
