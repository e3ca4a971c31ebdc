package visualtest

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func TestCompareImages_Identical(t *testing.T) {
	img := Solid(10, 10, red)

	result, err := CompareImages(img, Solid(10, 10, red), DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match")
	}
	if result.DifferentPixels != 0 {
		t.Errorf("expected 0 different pixels, got %d", result.DifferentPixels)
	}
	if result.TotalPixels != 100 {
		t.Errorf("expected 100 total pixels, got %d", result.TotalPixels)
	}
}

func TestCompareImages_Different(t *testing.T) {
	tmpDir := t.TempDir()

	opts := DefaultOptions()
	opts.DiffImagePath = filepath.Join(tmpDir, "diff.png")

	result, err := CompareImages(Solid(10, 10, red), Solid(10, 10, blue), opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match")
	}
	if result.DifferentPixels != 100 {
		t.Errorf("expected 100 different pixels, got %d", result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("expected max difference 255, got %d", result.MaxDifference)
	}

	if _, err := os.Stat(opts.DiffImagePath); os.IsNotExist(err) {
		t.Errorf("diff image was not created")
	}
}

func TestCompareImages_WithTolerance(t *testing.T) {
	img1 := Solid(10, 10, color.RGBA{100, 100, 100, 255})
	img2 := Solid(10, 10, color.RGBA{102, 102, 102, 255})

	opts := DefaultOptions()
	opts.Tolerance = 2
	result, err := CompareImages(img1, img2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match with tolerance=2")
	}

	opts.Tolerance = 0
	result, err = CompareImages(img1, img2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match with tolerance=0")
	}
}

func TestCompareImages_FuzzyRadius(t *testing.T) {
	actual := Solid(10, 10, color.White)
	PaintRect(actual, image.Rect(3, 3, 6, 6), red)
	expected := Solid(10, 10, color.White)
	PaintRect(expected, image.Rect(4, 3, 7, 6), red)

	strict, err := CompareImages(actual, expected, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if strict.Match {
		t.Errorf("expected a one pixel shift to differ without fuzzy matching")
	}

	opts := DefaultOptions()
	opts.FuzzyRadius = 1
	fuzzy, err := CompareImages(actual, expected, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !fuzzy.Match {
		t.Errorf("expected a one pixel shift to match with radius 1, %d pixels differ", fuzzy.DifferentPixels)
	}
}

func TestCompareImages_MaxDifferentPercent(t *testing.T) {
	actual := Solid(10, 10, color.White)
	PaintRect(actual, image.Rect(0, 0, 1, 1), red)

	opts := DefaultOptions()
	opts.MaxDifferentPercent = 1
	result, err := CompareImages(actual, Solid(10, 10, color.White), opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match || result.DifferentPixels != 1 {
		t.Errorf("expected a match with 1 differing pixel, got match=%v different=%d", result.Match, result.DifferentPixels)
	}
}

func TestCompareImages_DifferentDimensions(t *testing.T) {
	result, err := CompareImages(Solid(10, 10, red), Solid(20, 20, red), DefaultOptions())
	if err == nil {
		t.Errorf("expected error for different dimensions")
	}
	if result != nil && result.Match {
		t.Errorf("expected images with different dimensions to not match")
	}
}

func TestCompareFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path1 := filepath.Join(tmpDir, "img1.png")
	path2 := filepath.Join(tmpDir, "img2.png")
	if err := SavePNG(Solid(4, 4, red), path1); err != nil {
		t.Fatal(err)
	}
	if err := SavePNG(Solid(4, 4, red), path2); err != nil {
		t.Fatal(err)
	}

	result, err := CompareFiles(path1, path2, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected saved images to match")
	}

	if _, err := CompareFiles(filepath.Join(tmpDir, "missing.png"), path2, DefaultOptions()); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
