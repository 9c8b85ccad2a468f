package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

// testImage builds a solid-color RGBA image of the given size
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestFitInside(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		expectedW  int
		expectedH  int
	}{
		{
			name: "already fits - unchanged",
			srcW: 800, srcH: 600,
			expectedW: 800, expectedH: 600,
		},
		{
			name: "exact bound - unchanged",
			srcW: 1200, srcH: 1200,
			expectedW: 1200, expectedH: 1200,
		},
		{
			name: "wide image scaled by width",
			srcW: 2400, srcH: 1200,
			expectedW: 1200, expectedH: 600,
		},
		{
			name: "tall image scaled by height",
			srcW: 600, srcH: 2400,
			expectedW: 300, expectedH: 1200,
		},
		{
			name: "both over - scaled by larger ratio",
			srcW: 2400, srcH: 1800,
			expectedW: 1200, expectedH: 900,
		},
		{
			name: "small image never upscaled",
			srcW: 10, srcH: 10,
			expectedW: 10, expectedH: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testImage(tt.srcW, tt.srcH)

			dst := FitInside(src, 1200, 1200)

			bounds := dst.Bounds()
			assert.Equal(t, tt.expectedW, bounds.Dx())
			assert.Equal(t, tt.expectedH, bounds.Dy())

			// never exceed the box, never exceed the source
			assert.LessOrEqual(t, bounds.Dx(), 1200)
			assert.LessOrEqual(t, bounds.Dy(), 1200)
			assert.LessOrEqual(t, bounds.Dx(), tt.srcW)
			assert.LessOrEqual(t, bounds.Dy(), tt.srcH)
		})
	}
}

func TestFitInside_ReturnsSameImageWhenFitting(t *testing.T) {
	src := testImage(100, 100)
	assert.Same(t, src, FitInside(src, 1200, 1200))
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(20, 30)))

	img, err := DecodeImage(&buf)

	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestDecodeImage_InvalidData(t *testing.T) {
	img, err := DecodeImage(bytes.NewReader([]byte("not an image")))

	assert.Error(t, err)
	assert.Nil(t, img)
}

func TestEncodeWebP_Roundtrip(t *testing.T) {
	var buf bytes.Buffer

	err := EncodeWebP(&buf, testImage(64, 48))
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	decoded, err := xwebp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 48, decoded.Bounds().Dy())
}
