// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessUpload(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := pngBytes(t, 64, 48)
	result, err := p.ProcessUpload(bytes.NewReader(data), "abc123", "photo.png")
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if result.Width != 64 || result.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", result.Width, result.Height)
	}
	if result.MimeType != MimeTypePNG {
		t.Errorf("MimeType = %q, want image/png", result.MimeType)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("original not written: %v", err)
	}
	if !strings.HasPrefix(result.FilePath, dir) {
		t.Errorf("file written outside upload dir: %s", result.FilePath)
	}
}

func TestProcessUploadRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.ProcessUpload(strings.NewReader("not an image"), "x", "file.txt"); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestCreateVariantSkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	source := filepath.Join(dir, "small.png")
	if err := os.WriteFile(source, pngBytes(t, 100, 100), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	result, err := p.CreateVariant(source, "u1", "small.png", "medium", Variants["medium"])
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for small source, got %+v", result)
	}
}

func TestCreateVariantCrops(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	source := filepath.Join(dir, "wide.png")
	if err := os.WriteFile(source, pngBytes(t, 800, 400), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	result, err := p.CreateVariant(source, "u2", "wide.png", "thumbnail", Variants["thumbnail"])
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if result == nil {
		t.Fatal("expected a thumbnail result")
	}
	if result.Width != 320 || result.Height != 320 {
		t.Errorf("thumbnail = %dx%d, want 320x320", result.Width, result.Height)
	}
}

func TestSaveFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveFile("../escape", "f.png", []byte("x")); err == nil {
		t.Error("expected error for traversal in subdir")
	}
	if _, err := p.saveFile("ok", "", []byte("x")); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestDeleteFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := pngBytes(t, 16, 16)
	result, err := p.ProcessUpload(bytes.NewReader(data), "gone", "x.png")
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if err := p.DeleteFiles("gone"); err != nil {
		t.Fatalf("DeleteFiles: %v", err)
	}
	if _, err := os.Stat(result.FilePath); !os.IsNotExist(err) {
		t.Errorf("original still present after delete: %v", err)
	}
	// Deleting again is a no-op.
	if err := p.DeleteFiles("gone"); err != nil {
		t.Errorf("second DeleteFiles: %v", err)
	}
}

func TestDetectMimeType(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if got := p.DetectMimeType(pngBytes(t, 4, 4)); got != MimeTypePNG {
		t.Errorf("DetectMimeType = %q, want image/png", got)
	}
	if p.IsImage("application/pdf") {
		t.Error("pdf should not be a processable image")
	}
	if !p.IsImage(MimeTypeJPEG) {
		t.Error("jpeg should be a processable image")
	}
}
