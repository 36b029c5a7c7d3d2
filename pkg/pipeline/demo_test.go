package pipeline

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/jpfielding/pixshift.go/pkg/imageio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 16), uint8(y * 32), uint8(255 - x*y), 255})
		}
	}
	in := filepath.Join(dir, DemoInput)
	require.NoError(t, imageio.Save(in, src))

	r, out, _ := quietRunner()
	opts := DefaultDemoOptions()
	opts.Input = in
	opts.Dir = dir

	rep := r.Demo(context.Background(), opts)
	require.Len(t, rep.Steps, 4)
	for _, s := range rep.Steps {
		assert.True(t, s.OK, s.Name)
	}
	assert.NotEmpty(t, rep.OriginalDigest)
	assert.True(t, rep.SwapVerified)
	assert.True(t, rep.AddVerified)
	assert.True(t, rep.OK())

	for _, name := range []string{EncryptedSwapPNG, DecryptedSwapPNG, EncryptedAddPNG, DecryptedAddPNG} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Contains(t, out.String(), "--- Running Channel Swapping Encryption ---")
	assert.Contains(t, out.String(), "--- Decrypting Constant Addition Image ---")
}

func TestDemo_MissingInputSkipsDecrypt(t *testing.T) {
	dir := t.TempDir()
	r, out, stderr := quietRunner()

	rep := r.Demo(context.Background(), DemoOptions{
		Input:    filepath.Join(dir, "absent.jpeg"),
		Dir:      dir,
		Constant: 100,
	})

	require.Len(t, rep.Steps, 2)
	assert.Equal(t, "swap-encrypt", rep.Steps[0].Name)
	assert.Equal(t, "add-encrypt", rep.Steps[1].Name)
	assert.False(t, rep.OK())
	assert.NotContains(t, out.String(), "Decrypting")
	assert.Contains(t, stderr.String(), "was not found")
	assert.NoFileExists(t, filepath.Join(dir, EncryptedSwapPNG))
	assert.NoFileExists(t, filepath.Join(dir, DecryptedAddPNG))
}

func TestDefaultDemoOptions(t *testing.T) {
	opts := DefaultDemoOptions()
	assert.Equal(t, "R.jpeg", opts.Input)
	assert.Equal(t, ".", opts.Dir)
	assert.Equal(t, 100, opts.Constant)
}
