package canvas

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds the parsed Go font family. Sources are heavyweight; load once
// per goroutine that rasterizes and reuse.
type Fonts struct {
	sources [4]*text.FontSource

	mu    sync.Mutex
	faces map[faceKey]text.Face
}

type faceKey struct {
	style FontStyle
	size  int
}

// LoadFonts parses the bundled Go fonts.
func LoadFonts() (*Fonts, error) {
	f := &Fonts{faces: make(map[faceKey]text.Face)}
	for style, data := range map[FontStyle][]byte{
		Sans:     goregular.TTF,
		SansBold: gobold.TTF,
		Mono:     gomono.TTF,
		MonoBold: gomonobold.TTF,
	} {
		src, err := text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %d: %w", style, err)
		}
		f.sources[style] = src
	}
	return f, nil
}

// Face returns a cached face, sizes rounded to a whole pixel.
func (f *Fonts) Face(style FontStyle, size float64) text.Face {
	if style < Sans || style > MonoBold {
		style = Sans
	}
	key := faceKey{style: style, size: int(math.Max(1, math.Round(size)))}

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := f.sources[style].Face(float64(key.size))
	f.faces[key] = face
	return face
}

// Close releases the font sources.
func (f *Fonts) Close() error {
	var first error
	for _, src := range f.sources {
		if src == nil {
			continue
		}
		if err := src.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
