package qrimage

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePNGProducesValidImage(t *testing.T) {
	t.Parallel()

	data, err := GeneratePNG("JOR-DEN-001", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestGeneratePNGDefaultsSize(t *testing.T) {
	t.Parallel()

	data, err := GeneratePNG("JOR-DEN-001", 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	payload := `{"type":"clinic","license":"JOR-DEN-001","id":"abc123","issued":"2024-01-01"}`
	data, err := GeneratePNG(payload, 256)
	require.NoError(t, err)

	text, err := DecodeReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, payload, text)
}

func TestDecodeImageWithoutCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	blank := image.NewRGBA(image.Rect(0, 0, 64, 64))
	require.NoError(t, png.Encode(&buf, blank))

	_, err := DecodeReader(&buf)
	assert.ErrorIs(t, err, ErrNoCode)
}

func TestDecodeGarbageInput(t *testing.T) {
	t.Parallel()

	_, err := DecodeReader(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCode)
}
