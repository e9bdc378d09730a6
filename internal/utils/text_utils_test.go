package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop(), 0)

	if got := tp.TruncateText("short", 300); got != "short" {
		t.Errorf("TruncateText(short) = %q", got)
	}
	if got := tp.TruncateText("anything", 0); got != "anything" {
		t.Errorf("zero max size should leave text untouched, got %q", got)
	}

	long := strings.Repeat("a", 400)
	if got := tp.TruncateText(long, 300); len(got) != 300 {
		t.Errorf("truncated length = %d, want 300", len(got))
	}

	// A cut in the middle of a multi-byte rune must back off to a valid
	// boundary.
	text := strings.Repeat("é", 10)
	got := tp.TruncateText(text, 3)
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if got != "é" {
		t.Errorf("TruncateText = %q, want a single rune", got)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop(), 0)

	if got := tp.SanitizeUTF8("all good"); got != "all good" {
		t.Errorf("SanitizeUTF8 = %q", got)
	}

	broken := "ok" + string([]byte{0xff, 0xfe}) + "end"
	got := tp.SanitizeUTF8(broken)
	if !utf8.ValidString(got) {
		t.Errorf("result still invalid: %q", got)
	}
	if got != "okend" {
		t.Errorf("SanitizeUTF8 = %q, want %q", got, "okend")
	}
}

func TestPreparePreviewHonorsConfiguredSize(t *testing.T) {
	small := NewTextProcessor(zap.NewNop(), 5)
	if got := small.PreparePreview(strings.Repeat("a", 50)); len(got) != 5 {
		t.Errorf("preview length = %d, want 5", len(got))
	}

	// Zero falls back to the default cap.
	def := NewTextProcessor(zap.NewNop(), 0)
	if got := def.PreparePreview(strings.Repeat("a", 500)); len(got) != 300 {
		t.Errorf("default preview length = %d, want 300", len(got))
	}
	if got := def.PreparePreview("short"); got != "short" {
		t.Errorf("short preview = %q", got)
	}
}
