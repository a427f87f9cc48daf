// Package gif renders a played game record to an animated GIF, one
// frame per committed move.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/cuboidai/cuboid/game"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Move 10000: White put (10,10,Z)`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var globPalette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Encoder accumulates board frames and writes them out as one GIF.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	maxH, maxW  int
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewEncoder with maximum height and width of a frame.
func NewEncoder(h, w int) *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Encode appends one frame showing the board as it stands. A resolved
// position gets a winner caption and a long frame delay.
func (enc *Encoder) Encode(b *game.Board) error {
	repr := fmt.Sprintf("%v", b)

	if !enc.initialized {
		// lazy init: the first board fixes the frame size
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		splits := strings.Split(repr, "\n")
		oneline := splits[0]
		maxW := maxInt(font.MeasureString(enc.Face, oneline).Ceil(), font.MeasureString(enc.Face, dummyLongString).Ceil())
		dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
		w := maxW + 2*enc.padW
		h := (len(splits)+2)*dy + 2*enc.padH // + 2 for the move line and the winner line

		w = minInt(w, enc.maxW)
		h = minInt(h, enc.maxH)

		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}

		enc.H = h
		enc.W = w
		enc.initialized = true
	}

	bg := image.White
	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), bg, image.Point{}, draw.Src)
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	enc.Dst = im

	y := dy
	for _, s := range strings.Split(repr, "\n") {
		enc.Dot = fixed.P(enc.padW, y)
		enc.DrawString(s)
		y += dy
	}

	enc.Dot = fixed.P(enc.padW, y)
	if h := b.History(); len(h) > 0 {
		enc.DrawString(fmt.Sprintf("Move %d: %v", b.MoveNumber(), h[len(h)-1]))
	} else {
		enc.DrawString("Move 0")
	}
	y += dy

	var delay int
	if result := b.Judge(); result != game.Undetermined {
		delay = 300
		enc.Dot = fixed.P(enc.padW, y)
		enc.DrawString(fmt.Sprintf("Result: %v", result))
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Flush writes the gif into the writer.
func (enc *Encoder) Flush() error { return gif.EncodeAll(enc.Writer, enc.out) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
