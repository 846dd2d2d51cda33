package resolver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"log/slog"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"

	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

// Provider: 커버 아트 후보 URL을 찾아주는 단일 소스.
// attempted에는 소스가 실제로 시도한 검색 표기가 담긴다.
type Provider interface {
	Source() domain.CoverSource
	Find(ctx context.Context, artist, album string) (coverURL string, attempted []string, err error)
}

// Result: 커버 아트 선정 결과. Candidate가 nil이면 사용 가능한 후보가 없었다는 뜻이다.
type Result struct {
	Candidate *domain.CoverCandidate
	Attempted []string
}

// Service: 다중 소스 커버 아트 리졸버.
// 프로바이더 순서가 곧 우선순위다. (1차 메타데이터 → 카탈로그 → 아카이브)
type Service struct {
	providers []Provider
	prober    *Prober
	group     singleflight.Group
	logger    *slog.Logger
}

// NewService: 커버 아트 리졸버를 생성한다.
func NewService(providers []Provider, prober *Prober, logger *slog.Logger) *Service {
	return &Service{
		providers: providers,
		prober:    prober,
		logger:    logger,
	}
}

// ResolveSequential: 우선순위 순서로 소스를 시도하고, 사용 가능 판정을 통과한 첫 후보에서
// 멈춘다. 뒤 순위 소스는 호출하지 않는다.
func (s *Service) ResolveSequential(ctx context.Context, artist, album string) (*Result, error) {
	value, err, _ := s.group.Do(dedupeKey("seq", artist, album), func() (any, error) {
		return s.resolveSequential(ctx, artist, album)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Result), nil
}

func (s *Service) resolveSequential(ctx context.Context, artist, album string) (*Result, error) {
	var attempted []string

	for _, provider := range s.providers {
		coverURL, tried, err := provider.Find(ctx, artist, album)
		attempted = append(attempted, tried...)
		if err != nil {
			s.logger.Debug("cover_source_miss",
				slog.String("source", string(provider.Source())),
				slog.Any("error", err),
			)
			continue
		}
		if coverURL == "" || !s.prober.IsUsable(ctx, coverURL) {
			continue
		}

		return &Result{
			Candidate: &domain.CoverCandidate{
				URL:    coverURL,
				Source: provider.Source(),
				Score:  scoreCandidate(provider.Source(), coverURL),
			},
			Attempted: attempted,
		}, nil
	}

	return &Result{Attempted: attempted}, nil
}

// ResolveBest: 모든 소스를 병렬로 조회한 뒤 전 후보를 모아 점수로 고른다.
// 아카이브 소스가 항상 이기고, 그 외에는 URL의 해상도 토큰이 큰 쪽이 이긴다.
// 동점은 우선순위 순서를 유지한다.
func (s *Service) ResolveBest(ctx context.Context, artist, album string) (*Result, error) {
	value, err, _ := s.group.Do(dedupeKey("best", artist, album), func() (any, error) {
		return s.resolveBest(ctx, artist, album)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Result), nil
}

type probeOutcome struct {
	order     int
	candidate *domain.CoverCandidate
	attempted []string
}

func (s *Service) resolveBest(ctx context.Context, artist, album string) (*Result, error) {
	outcomes := make([]probeOutcome, len(s.providers))

	p := pool.New().WithContext(ctx)
	for i, provider := range s.providers {
		p.Go(func(ctx context.Context) error {
			coverURL, tried, err := provider.Find(ctx, artist, album)
			outcomes[i].order = i
			outcomes[i].attempted = tried
			if err != nil {
				s.logger.Debug("cover_source_miss",
					slog.String("source", string(provider.Source())),
					slog.Any("error", err),
				)
				return nil
			}
			if coverURL == "" || !s.prober.IsUsable(ctx, coverURL) {
				return nil
			}
			outcomes[i].candidate = &domain.CoverCandidate{
				URL:    coverURL,
				Source: provider.Source(),
				Score:  scoreCandidate(provider.Source(), coverURL),
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var attempted []string
	var candidates []probeOutcome
	for _, outcome := range outcomes {
		attempted = append(attempted, outcome.attempted...)
		if outcome.candidate != nil {
			candidates = append(candidates, outcome)
		}
	}
	if len(candidates) == 0 {
		return &Result{Attempted: attempted}, nil
	}

	// 아카이브 소스가 점수와 무관하게 항상 앞선다.
	// 동점 시 선언 순서(우선순위)가 앞선 소스를 유지한다
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].candidate, candidates[j].candidate
		if (a.Source == domain.SourceCoverArt) != (b.Source == domain.SourceCoverArt) {
			return a.Source == domain.SourceCoverArt
		}
		return a.Score > b.Score
	})

	return &Result{Candidate: candidates[0].candidate, Attempted: attempted}, nil
}

func dedupeKey(mode, artist, album string) string {
	return fmt.Sprintf("%s|%s|%s", mode, artist, album)
}

var dimensionToken = regexp.MustCompile(`(\d{2,5})x(\d{2,5})`)

// scoreCandidate: 후보 점수를 계산한다. 아카이브 소스는 고정 최상위 점수,
// 그 외에는 URL에서 발견한 가장 큰 해상도 토큰, 토큰이 없으면 기본 점수 1.
func scoreCandidate(source domain.CoverSource, coverURL string) int {
	if source == domain.SourceCoverArt {
		return constants.ResolverConfig.ArchivalScore
	}

	best := constants.ResolverConfig.UnscoredScore
	for _, match := range dimensionToken.FindAllStringSubmatch(coverURL, -1) {
		width, err1 := strconv.Atoi(match[1])
		height, err2 := strconv.Atoi(match[2])
		if err1 != nil || err2 != nil {
			continue
		}
		score := width
		if height > width {
			score = height
		}
		if score > best {
			best = score
		}
	}
	return best
}
