package common

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func Test_decodeImg(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	img, err := decodeImg("image/png", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())

	// webp is an accepted type and must reach the webp decoder, so malformed
	// data fails with a decode error rather than the unsupported-type one.
	require.True(t, slices.Contains(allowedMimeTypes, "image/webp"))
	_, err = decodeImg("image/webp", bytes.NewReader([]byte("not a webp")))
	require.Error(t, err)
	require.NotContains(t, err.Error(), "accepted")

	_, err = decodeImg("image/tiff", bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "accepted")
}
