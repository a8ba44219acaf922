package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshotter(dir, "creeperworld")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	// 1x2, bottom row red, top row green
	pixels := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	name, err := s.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(name), "creeperworld_2026-01-02_03-04-05") {
		t.Errorf("unexpected name %s", name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got.G != 255 {
		t.Errorf("top pixel = %v, want green", got)
	}
	if got := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA); got.R != 255 {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "x")
	if _, err := s.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter(time.Second)
	t0 := time.Unix(100, 0)

	for i := 0; i < 59; i++ {
		if _, ok := c.Frame(t0.Add(time.Duration(i) * time.Second / 60)); ok {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	fps, ok := c.Frame(t0.Add(time.Second))
	if !ok {
		t.Fatal("expected a report after one second")
	}
	if fps != 60 {
		t.Errorf("fps = %v, want 60", fps)
	}
	if _, ok := c.Frame(t0.Add(time.Second + time.Millisecond)); ok {
		t.Error("counter should restart after a report")
	}
}
