// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded media: format detection, EXIF
// auto-rotation, and thumbnail generation under the uploads directory.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Supported image MIME types.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// Variant describes a derived image size.
type Variant struct {
	Width   int
	Height  int
	Quality int
	Crop    bool
}

// Variants are the derived sizes created for every uploaded image:
// a cropped thumbnail for the media grid and a bounded medium size
// for embedding in content.
var Variants = map[string]Variant{
	"thumbnail": {Width: 320, Height: 320, Quality: 80, Crop: true},
	"medium":    {Width: 1200, Height: 1200, Quality: 85},
}

// Result describes a stored image file.
type Result struct {
	Width    int
	Height   int
	MimeType string
	Size     int64
	FilePath string
}

// Processor handles image operations using pure Go libraries.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor rooted at the uploads directory.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// ProcessUpload decodes an uploaded image, applies EXIF orientation,
// and stores the normalized original under originals/<uuid>/.
func (p *Processor) ProcessUpload(reader io.Reader, uuid, filename string) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()

	// Re-encoding strips EXIF; the pure Go encoders do not carry it.
	processed, err := encodeImage(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	filePath, err := p.saveFile(filepath.Join("originals", uuid), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("saving original: %w", err)
	}

	return &Result{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: formatToMimeType(format),
		Size:     int64(len(processed)),
		FilePath: filePath,
	}, nil
}

// CreateVariant stores one derived size of a source image. Returns nil
// when the source is already smaller than the target.
func (p *Processor) CreateVariant(sourcePath, uuid, filename, name string, v Variant) (*Result, error) {
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= v.Width && bounds.Dy() <= v.Height && !v.Crop {
		return nil, nil
	}

	var resized image.Image
	if v.Crop {
		resized = imaging.Fill(img, v.Width, v.Height, imaging.Center, imaging.Lanczos)
	} else {
		resized = imaging.Fit(img, v.Width, v.Height, imaging.Lanczos)
	}

	format := detectFormatFromFilename(filename)
	processed, err := encodeImage(resized, format, v.Quality)
	if err != nil {
		return nil, fmt.Errorf("encoding %s variant: %w", name, err)
	}

	filePath, err := p.saveFile(filepath.Join(name, uuid), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("saving %s variant: %w", name, err)
	}

	resBounds := resized.Bounds()
	return &Result{
		Width:    resBounds.Dx(),
		Height:   resBounds.Dy(),
		MimeType: formatToMimeType(format),
		Size:     int64(len(processed)),
		FilePath: filePath,
	}, nil
}

// CreateAllVariants creates every standard variant, continuing past
// per-variant failures.
func (p *Processor) CreateAllVariants(sourcePath, uuid, filename string) ([]*Result, error) {
	var results []*Result
	var errs []string

	for name, v := range Variants {
		result, err := p.CreateVariant(sourcePath, uuid, filename, name, v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if result != nil {
			results = append(results, result)
		}
	}

	if len(errs) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("all variants failed: %s", strings.Join(errs, "; "))
	}
	return results, nil
}

// SaveDocument stores a non-image upload verbatim under
// documents/<uuid>/.
func (p *Processor) SaveDocument(reader io.Reader, uuid, filename string) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading document data: %w", err)
	}

	filePath, err := p.saveFile(filepath.Join("documents", uuid), filename, data)
	if err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	return &Result{
		MimeType: p.DetectMimeType(data),
		Size:     int64(len(data)),
		FilePath: filePath,
	}, nil
}

// IsImage reports whether a MIME type is a processable image.
func (p *Processor) IsImage(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// DetectMimeType detects the MIME type of file data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// DeleteFiles removes the original and all variants of an upload.
func (p *Processor) DeleteFiles(uuid string) error {
	dirs := []string{"originals", "documents"}
	for name := range Variants {
		dirs = append(dirs, name)
	}
	for _, dir := range dirs {
		target := filepath.Join(p.uploadDir, dir, uuid)
		if err := os.RemoveAll(target); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting %s: %w", dir, err)
		}
	}
	return nil
}

// readExifOrientation returns the EXIF orientation tag, or 1 (normal)
// if it cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		// WebP has no pure Go encoder; re-encode as JPEG.
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func detectFormatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return MimeTypeJPEG
	case "png":
		return MimeTypePNG
	case "gif":
		return MimeTypeGIF
	case "webp":
		return MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

// saveFile writes data under uploadDir/subDir/filename, rejecting any
// path traversal in either component.
func (p *Processor) saveFile(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	absTarget := filepath.Join(absBase, cleanSubDir)

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return filePath, nil
}
