package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

var (
	ErrFormat   = errors.New("export: unknown format")
	ErrNoFFmpeg = errors.New("export: ffmpeg not found in PATH")
)

// Sink receives painted frames in order.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// NewSink opens the sink for opts.Format writing to opts.Output.
func NewSink(ctx context.Context, opts Options) (Sink, error) {
	switch opts.Format {
	case "png":
		return newPNGSink(opts.Output)
	case "gif":
		return newGIFSink(opts.Output, opts.FPS, opts.GIFWidth)
	case "mp4":
		return newFFmpegSink(ctx, opts.Output, opts.Width, opts.Height, opts.FPS)
	}
	return nil, fmt.Errorf("%w %q", ErrFormat, opts.Format)
}

// pngSink writes numbered PNG files into a directory.
type pngSink struct {
	dir string
	n   int
}

func newPNGSink(dir string) (*pngSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &pngSink{dir: dir}, nil
}

func (s *pngSink) WriteFrame(img *image.RGBA) error {
	f, err := os.Create(filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", s.n)))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	s.n++
	return f.Close()
}

func (s *pngSink) Close() error { return nil }

// gifSink collects downscaled, dithered frames and encodes them on Close.
type gifSink struct {
	out   *os.File
	anim  gif.GIF
	delay int
	width int
}

func newGIFSink(path string, fps, width int) (*gifSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &gifSink{
		out:   f,
		delay: max(1, int(math.Round(100/float64(fps)))),
		width: width,
	}, nil
}

func (s *gifSink) WriteFrame(img *image.RGBA) error {
	src := image.Image(img)
	b := img.Bounds()
	if s.width > 0 && s.width < b.Dx() {
		h := max(1, int(math.Round(float64(b.Dy())*float64(s.width)/float64(b.Dx()))))
		scaled := image.NewRGBA(image.Rect(0, 0, s.width, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		src = scaled
	}

	p := image.NewPaletted(src.Bounds(), palette.Plan9)
	xdraw.FloydSteinberg.Draw(p, p.Bounds(), src, src.Bounds().Min)
	s.anim.Image = append(s.anim.Image, p)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *gifSink) Close() error {
	if len(s.anim.Image) == 0 {
		s.out.Close()
		return errors.New("export: gif has no frames")
	}
	if err := gif.EncodeAll(s.out, &s.anim); err != nil {
		s.out.Close()
		return err
	}
	return s.out.Close()
}

// ffmpegSink pipes raw RGBA frames into an ffmpeg H.264 encode.
type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
}

func ffmpegArgs(path string, width, height, fps int) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-movflags", "+faststart",
		path,
	}
}

func newFFmpegSink(ctx context.Context, path string, width, height, fps int) (*ffmpegSink, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrNoFFmpeg
	}

	s := &ffmpegSink{width: width}
	s.cmd = exec.CommandContext(ctx, bin, ffmpegArgs(path, width, height, fps)...)
	s.cmd.Stderr = &s.stderr

	s.stdin, err = s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	row := s.width * 4
	if img.Stride == row {
		_, err := s.stdin.Write(img.Pix[:row*img.Bounds().Dy()])
		return err
	}
	for y := 0; y < img.Bounds().Dy(); y++ {
		off := y * img.Stride
		if _, err := s.stdin.Write(img.Pix[off : off+row]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w: %s", err, lastLine(s.stderr.String()))
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
