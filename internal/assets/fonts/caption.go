package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	parseOnce  sync.Once
	parsedFont *opentype.Font
	parseErr   error
	faceCache  sync.Map // size -> font.Face
)

// Caption: 지정 크기의 캡션용 폰트 페이스를 반환한다. 페이스는 크기별로 캐시된다.
func Caption(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("parse caption font failed: %w", parseErr)
	}

	if cached, ok := faceCache.Load(size); ok {
		return cached.(font.Face), nil
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create caption face failed: %w", err)
	}

	actual, _ := faceCache.LoadOrStore(size, face)
	return actual.(font.Face), nil
}
