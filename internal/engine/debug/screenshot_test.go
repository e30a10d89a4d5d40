package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	s := NewScreenshots("shots", "labyrinth")
	s.now = fixedClock

	if got, want := s.Filename(""), filepath.Join("shots", "labyrinth_2024-03-09_14-05-06.png"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got := s.Filename("abcd"); !strings.HasSuffix(got, "_14-05-06_abcd.png") {
		t.Errorf("label not appended: %s", got)
	}
}

func TestSaveFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewScreenshots(dir, "frame")
	s.now = fixedClock

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2, "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top row should be blue, got r=%d b=%d", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom row should be red, got r=%d b=%d", r, b)
	}
}

func TestSaveSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "frame")
	if _, err := s.Save(make([]byte, 7), 1, 2, ""); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := s.Save(nil, 0, 0, ""); err == nil {
		t.Error("expected error for empty frame")
	}
}
