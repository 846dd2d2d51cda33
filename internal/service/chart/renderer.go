package chart

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"log/slog"

	"github.com/sourcegraph/conc/pool"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/kapu/lastfm-discord-bot-go/internal/assets/fonts"
	"github.com/kapu/lastfm-discord-bot-go/internal/constants"
	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

// Renderer: 상위 앨범 목록을 NxN 커버 그리드 이미지로 합성한다.
// 커버는 동시 다운로드하고, 커버가 없는 칸은 라벨만 있는 빈 타일로 채운다.
type Renderer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRenderer: 차트 렌더러를 생성한다.
func NewRenderer(httpClient *http.Client, logger *slog.Logger) *Renderer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ChartConfig.DownloadTimeout}
	}
	return &Renderer{httpClient: httpClient, logger: logger}
}

// ClampGridSize: 그리드 한 변 크기를 허용 범위로 보정한다.
func ClampGridSize(size int) int {
	if size < constants.ChartConfig.MinGridSize {
		return constants.ChartConfig.MinGridSize
	}
	if size > constants.ChartConfig.MaxGridSize {
		return constants.ChartConfig.MaxGridSize
	}
	return size
}

// Render: 앨범 목록을 gridSize x gridSize 그리드 JPEG로 렌더링한다.
// albums가 그리드 칸 수보다 적으면 남는 칸은 빈 타일이 된다.
func (r *Renderer) Render(ctx context.Context, albums []domain.TopAlbum, gridSize int) ([]byte, error) {
	gridSize = ClampGridSize(gridSize)
	cells := gridSize * gridSize
	if len(albums) > cells {
		albums = albums[:cells]
	}
	if len(albums) == 0 {
		return nil, errors.NewValidationError("albums", "no albums to render")
	}

	covers := make([]image.Image, len(albums))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(constants.ChartConfig.MaxDownloads)
	for i, album := range albums {
		p.Go(func(ctx context.Context) error {
			if album.ImageURL == "" {
				return nil
			}
			img, err := r.download(ctx, album.ImageURL)
			if err != nil {
				// 커버 한 장 실패가 차트 전체를 막지 않는다
				r.logger.Warn("chart_cover_download_failed",
					slog.String("album", album.Name),
					slog.Any("error", err),
				)
				return nil
			}
			covers[i] = img
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	tile := constants.ChartConfig.TileSize
	canvas := image.NewRGBA(image.Rect(0, 0, gridSize*tile, gridSize*tile))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.RGBA{R: 24, G: 24, B: 24, A: 255}), image.Point{}, xdraw.Src)

	face, err := fonts.Caption(constants.ChartConfig.LabelFontSize)
	if err != nil {
		return nil, err
	}

	for i, album := range albums {
		col := i % gridSize
		row := i / gridSize
		rect := image.Rect(col*tile, row*tile, (col+1)*tile, (row+1)*tile)

		if covers[i] != nil {
			xdraw.CatmullRom.Scale(canvas, rect, covers[i], covers[i].Bounds(), xdraw.Src, nil)
		}
		drawLabel(canvas, rect, face,
			fmt.Sprintf("%s - %s", album.Artist, album.Name),
			fmt.Sprintf("%d plays", album.PlayCount),
		)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: constants.ChartConfig.JPEGQuality}); err != nil {
		return nil, errors.NewServiceError("chart", "encode", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) download(ctx context.Context, coverURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode cover failed: %w", err)
	}
	return img, nil
}

// drawLabel: 타일 하단에 반투명 띠를 깔고 두 줄 라벨을 그린다.
func drawLabel(canvas *image.RGBA, rect image.Rectangle, face font.Face, title, subtitle string) {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	stripHeight := lineHeight*2 + 12

	strip := image.Rect(rect.Min.X, rect.Max.Y-stripHeight, rect.Max.X, rect.Max.Y)
	xdraw.Draw(canvas, strip, image.NewUniform(color.RGBA{A: 170}), image.Point{}, xdraw.Over)

	drawText(canvas, face, title, rect.Min.X+8, rect.Max.Y-stripHeight+lineHeight, rect.Max.X-8)
	drawText(canvas, face, subtitle, rect.Min.X+8, rect.Max.Y-stripHeight+lineHeight*2+4, rect.Max.X-8)
}

func drawText(canvas *image.RGBA, face font.Face, text string, x, baseline, maxX int) {
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}

	// 타일 폭을 넘는 라벨은 잘라낸다
	limit := fixed.I(maxX)
	for _, r := range text {
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		if drawer.Dot.X+advance > limit {
			break
		}
		drawer.DrawString(string(r))
	}
}
