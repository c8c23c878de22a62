package render

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/fluidlab/internal/fluid"
)

const DefaultFPS = 30

var ErrNoFrames = errors.New("render: no frames recorded")

// Recorder collects GIF frames at a bounded rate while recording is on.
type Recorder struct {
	fps    int
	scale  int
	active bool
	last   time.Time
	frames []*image.Paletted
}

// NewRecorder captures at most fps frames per second. Non-positive values
// fall back to DefaultFPS and a scale of 1.
func NewRecorder(fps, scale int) *Recorder {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if scale <= 0 {
		scale = 1
	}
	return &Recorder{fps: fps, scale: scale}
}

func (r *Recorder) FPS() int        { return r.fps }
func (r *Recorder) Recording() bool { return r.active }
func (r *Recorder) Frames() int     { return len(r.frames) }

// Start discards any previous frames and begins recording.
func (r *Recorder) Start() {
	r.frames = nil
	r.last = time.Time{}
	r.active = true
}

func (r *Recorder) Stop() {
	r.active = false
}

// Capture adds a frame if recording and at least one frame interval has
// passed since the previous one. It reports whether a frame was taken.
// Every frame has the size of the first one; a grid of another resolution
// is resampled to fit.
func (r *Recorder) Capture(g *fluid.Grid, now time.Time) bool {
	if !r.active {
		return false
	}
	if !r.last.IsZero() && now.Sub(r.last) < time.Second/time.Duration(r.fps) {
		return false
	}
	r.last = now

	src := Scaled(Image(g), r.scale)
	if len(r.frames) > 0 {
		src = resample(src, r.frames[0].Bounds())
	}
	frame := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.Draw(frame, frame.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, frame)
	return true
}

// Encode writes the recorded frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	delay := max(1, 100/r.fps)
	anim := gif.GIF{LoopCount: 0}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("render: encode gif: %w", err)
	}
	return nil
}

// resample is a nearest-neighbour resize of img onto bounds.
func resample(img *image.RGBA, bounds image.Rectangle) *image.RGBA {
	sb := img.Bounds()
	if sb == bounds {
		return img
	}
	out := image.NewRGBA(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sb.Dy()/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sb.Dx()/w
			src := img.PixOffset(sx, sy)
			dst := out.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			copy(out.Pix[dst:dst+4], img.Pix[src:src+4])
		}
	}
	return out
}
