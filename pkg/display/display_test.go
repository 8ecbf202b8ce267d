package display

import (
	"image"
	"testing"

	"github.com/thelolagemann/go8080/internal/invaders"
)

func TestSpans(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 8, 3), invaders.Palette)
	// row 0: two runs, row 1: empty, row 2: run touching the edge
	for _, x := range []int{1, 2, 3, 5} {
		img.SetColorIndex(x, 0, 1)
	}
	for _, x := range []int{6, 7} {
		img.SetColorIndex(x, 2, 1)
	}

	got := Spans(img)
	expected := []Span{{1, 0, 3}, {5, 0, 1}, {6, 2, 2}}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("span %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestSpans_Blank(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, invaders.ScreenWidth, invaders.ScreenHeight), invaders.Palette)
	if spans := Spans(img); len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}

func TestPCM(t *testing.T) {
	got := pcm(nil, []int16{1, -1, 0x1234})
	expected := []byte{0x01, 0x00, 0xFF, 0xFF, 0x34, 0x12}
	if string(got) != string(expected) {
		t.Errorf("expected % X, got % X", expected, got)
	}
}
