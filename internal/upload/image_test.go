package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"a.png", "b.JPG", "c.jpeg", "d.gif"}
	for _, name := range allowed {
		if !AllowedFile(name) {
			t.Errorf("AllowedFile(%q) = false", name)
		}
	}
	rejected := []string{"a.pdf", "b.exe", "noext", "c.png.sh"}
	for _, name := range rejected {
		if AllowedFile(name) {
			t.Errorf("AllowedFile(%q) = true", name)
		}
	}
}

func TestProcessImageRejectsNonImage(t *testing.T) {
	// a text file renamed to .png still fails the decode verification
	_, err := ProcessImage(strings.NewReader("definitely not pixels"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("err = %v, want ErrInvalidImage", err)
	}
}

func TestProcessImageReencodesAsJPEG(t *testing.T) {
	out, err := ProcessImage(bytes.NewReader(encodePNG(t, 100, 60)))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable jpeg: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 60 {
		t.Errorf("small image was resized to %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessImageDownsamplesToBoundingBox(t *testing.T) {
	out, err := ProcessImage(bytes.NewReader(encodePNG(t, 1600, 1200)))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		t.Fatalf("output %dx%d exceeds bounding box", b.Dx(), b.Dy())
	}
	// aspect ratio 4:3 preserved
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("output = %dx%d, want 800x600", b.Dx(), b.Dy())
	}
}

func TestStoreSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := store.Save(7, []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(name, "user_7_") || !strings.HasSuffix(name, ".jpg") {
		t.Errorf("filename %q has unexpected shape", name)
	}
	if _, err := os.Stat(store.Path(name)); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	// two saves never collide
	name2, err := store.Save(7, []byte("other"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if name2 == name {
		t.Errorf("duplicate filename generated")
	}

	store.Remove(name)
	if _, err := os.Stat(store.Path(name)); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove")
	}

	// best-effort semantics, removing a missing file must not panic
	store.Remove("does_not_exist.jpg")
	store.Remove("")
}

func TestStorePathStripsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	p := store.Path("../../etc/passwd")
	if filepath.Dir(p) != dir {
		t.Errorf("Path escaped the store dir: %s", p)
	}
}
