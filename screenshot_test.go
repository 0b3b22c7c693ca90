package bento

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-hover", "after-hover"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	app, err := NewApp(appConfig())
	if err != nil {
		t.Fatal(err)
	}
	app.Screenshot("a")
	app.Screenshot("b")
	app.Screenshot("c")
	if len(app.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(app.screenshotQueue))
	}
	if app.screenshotQueue[0] != "a" || app.screenshotQueue[1] != "b" || app.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", app.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	app, err := NewApp(appConfig())
	if err != nil {
		t.Fatal(err)
	}
	if app.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", app.ScreenshotDir, "screenshots")
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("wrote an empty PNG")
	}
}
