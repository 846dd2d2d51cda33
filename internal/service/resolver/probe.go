package resolver

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
)

// Prober: 후보 URL의 사용 가능 판정기. HEAD 요청으로 실존을 확인하며,
// 타임아웃/오류/비2xx/플레이스홀더는 전부 사용 불가로 판정한다. (fail-closed)
type Prober struct {
	httpClient   *http.Client
	placeholders map[string]struct{}
	logger       *slog.Logger
}

// NewProber: 사용 가능 판정기를 생성한다.
func NewProber(httpClient *http.Client, logger *slog.Logger) *Prober {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ResolverConfig.ProbeTimeout}
	}
	placeholders := make(map[string]struct{}, len(constants.KnownPlaceholders))
	for _, url := range constants.KnownPlaceholders {
		placeholders[url] = struct{}{}
	}
	return &Prober{
		httpClient:   httpClient,
		placeholders: placeholders,
		logger:       logger,
	}
}

// IsUsable: 후보 URL이 실제 커버 아트로 쓸 수 있는지 판정한다.
func (p *Prober) IsUsable(ctx context.Context, coverURL string) bool {
	if coverURL == "" {
		return false
	}
	// 알려진 기본 별 이미지는 실존 여부와 무관하게 폐기한다
	if _, known := p.placeholders[coverURL]; known {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, constants.ResolverConfig.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, coverURL, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Debug("cover_probe_failed", slog.String("url", coverURL), slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
