// Package spritesheet describes how animation frames are laid out on a sheet
// and turns that layout into sprite components.
package spritesheet

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/plus3/spritewalk/internal/components"
)

//go:embed assets/hero.png
var defaultSheet []byte

var (
	ErrInvalidLayout = errors.New("invalid sprite sheet layout")
	ErrSheetTooSmall = errors.New("sprite sheet too small for layout")
)

// FramesPerDirection is the length of every walking sequence.
const FramesPerDirection = 3

// Layout places FrameCount frames of Origin's size side by side, starting at
// Origin, in one row per direction. Rows are counted in frame heights.
type Layout struct {
	Origin     image.Rectangle
	FrameCount int
	Rows       map[components.Direction]int
}

// DefaultLayout matches the embedded sheet: 26x36 frames, three per row,
// rows ordered down, left, right, up.
func DefaultLayout() Layout {
	rows := make(map[components.Direction]int, len(components.Directions))
	for _, d := range components.Directions {
		rows[d] = DirectionRow(d)
	}
	return Layout{
		Origin:     image.Rect(0, 0, 26, 36),
		FrameCount: FramesPerDirection,
		Rows:       rows,
	}
}

// DirectionRow is the row of the default layout used for d.
func DirectionRow(d components.Direction) int {
	switch d {
	case components.Down:
		return 0
	case components.Left:
		return 1
	case components.Right:
		return 2
	case components.Up:
		return 3
	}
	panic(fmt.Sprintf("unknown direction %d", int(d)))
}

// Validate checks the layout is well formed and that every frame of every row
// lies inside bounds.
func (l Layout) Validate(bounds image.Rectangle) error {
	if l.Origin.Dx() <= 0 || l.Origin.Dy() <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidLayout, l.Origin.Dx(), l.Origin.Dy())
	}
	if l.FrameCount != FramesPerDirection {
		return fmt.Errorf("%w: frame count %d, want %d", ErrInvalidLayout, l.FrameCount, FramesPerDirection)
	}

	used := make(map[int]components.Direction, len(l.Rows))
	for _, d := range components.Directions {
		row, ok := l.Rows[d]
		if !ok {
			return fmt.Errorf("%w: no row for %s", ErrInvalidLayout, d)
		}
		if row < 0 {
			return fmt.Errorf("%w: negative row %d for %s", ErrInvalidLayout, row, d)
		}
		if other, dup := used[row]; dup {
			return fmt.Errorf("%w: row %d used by both %s and %s", ErrInvalidLayout, row, other, d)
		}
		used[row] = d
	}

	for _, d := range components.Directions {
		for i, frame := range l.Frames(0, d) {
			if !frame.Region.In(bounds) {
				return fmt.Errorf("%w: %s frame %d at %v outside %v", ErrSheetTooSmall, d, i, frame.Region, bounds)
			}
		}
	}
	return nil
}

// Frames returns the animation frames for direction d on the given sheet.
func (l Layout) Frames(sheet int, d components.Direction) []components.Sprite {
	w, h := l.Origin.Dx(), l.Origin.Dy()
	y := l.Origin.Min.Y + h*l.Rows[d]

	frames := make([]components.Sprite, l.FrameCount)
	for i := range frames {
		x := l.Origin.Min.X + w*i
		frames[i] = components.Sprite{
			Sheet:  sheet,
			Region: image.Rect(x, y, x+w, y+h),
		}
	}
	return frames
}

// Animation builds a MovementAnimation holding every direction's frames.
func (l Layout) Animation(sheet int) components.MovementAnimation {
	return components.MovementAnimation{
		UpFrames:    l.Frames(sheet, components.Up),
		DownFrames:  l.Frames(sheet, components.Down),
		LeftFrames:  l.Frames(sheet, components.Left),
		RightFrames: l.Frames(sheet, components.Right),
	}
}

// Decode reads a PNG or JPEG sprite sheet.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode sprite sheet: %w", err)
	}
	return img, nil
}

// Load decodes the sheet at path. An empty path loads the built-in sheet.
func Load(path string) (image.Image, error) {
	if path == "" {
		return Decode(bytes.NewReader(defaultSheet))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite sheet: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
