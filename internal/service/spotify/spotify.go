package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"log/slog"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Service: Spotify Web API 클라이언트. client credentials 플로우로 토큰을 자동 갱신하며,
// 트랙 링크 보강에만 쓰인다. 자격 증명이 없으면 전체 기능이 비활성화된다.
type Service struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewService: Spotify 서비스를 생성한다. clientID/secret이 비어 있으면 nil을 반환한다.
func NewService(ctx context.Context, clientID, clientSecret string, logger *slog.Logger) *Service {
	if clientID == "" || clientSecret == "" {
		return nil
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     constants.APIConfig.SpotifyTokenURL,
	}

	// oauth2 클라이언트가 토큰 만료 시 자동으로 재발급한다
	return &Service{
		httpClient: cfg.Client(ctx),
		baseURL:    constants.APIConfig.SpotifyBaseURL,
		logger:     logger,
	}
}

type trackSearchResponse struct {
	Tracks struct {
		Items []struct {
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	} `json:"tracks"`
}

// TrackURL: 아티스트/트랙명으로 검색해 첫 매치의 Spotify 링크를 반환한다. 매치 없으면 빈 문자열.
func (s *Service) TrackURL(ctx context.Context, artist, track string) (string, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("artist:%s track:%s", artist, track))
	query.Set("type", "track")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return "", errors.NewAPIError("spotify", "search", 0, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("spotify_request_failed", slog.String("track", track), slog.Any("error", err))
		return "", errors.NewAPIError("spotify", "search", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewAPIError("spotify", "search", resp.StatusCode,
			fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var result trackSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewAPIError("spotify", "search", resp.StatusCode, err)
	}

	if len(result.Tracks.Items) == 0 {
		return "", nil
	}
	return result.Tracks.Items[0].ExternalURLs.Spotify, nil
}
