package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpfielding/pixshift.go/pkg/imageio"
	"github.com/jpfielding/pixshift.go/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRoot(context.Background(), "deadbeef")
	root.SetOut(&out)
	root.SetErr(&errOut)
	if args == nil {
		args = []string{} // nil would make cobra read os.Args
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func fixture(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 0, 128, 255})
	path := filepath.Join(dir, name)
	require.NoError(t, imageio.Save(path, img))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef\n", out)
}

func TestTree(t *testing.T) {
	out, _, err := execute(t, "tree")
	require.NoError(t, err)
	for _, name := range []string{"swap", "add", "demo", "info", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestSwapCmd(t *testing.T) {
	dir := t.TempDir()
	in := fixture(t, dir, "in.png")
	enc := filepath.Join(dir, "enc.png")
	dec := filepath.Join(dir, "dec.png")

	out, _, err := execute(t, "swap", "-i", in, "-o", enc)
	require.NoError(t, err)
	assert.Contains(t, out, "encrypted and saved")

	out, _, err = execute(t, "swap", "-i", enc, "-o", dec, "--decrypt")
	require.NoError(t, err)
	assert.Contains(t, out, "decrypted and saved")

	a, _, err := imageio.Load(in)
	require.NoError(t, err)
	b, _, err := imageio.Load(dec)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestAddCmd(t *testing.T) {
	dir := t.TempDir()
	in := fixture(t, dir, "in.png")
	enc := filepath.Join(dir, "enc.png")

	_, _, err := execute(t, "add", "-i", in, "-o", enc, "-k", "100")
	require.NoError(t, err)

	img, _, err := imageio.Load(enc)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{99, 100, 228, 255}, img.RGBAAt(1, 0))
}

func TestAddCmd_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")

	_, stderr, err := execute(t, "add", "-i", filepath.Join(dir, "missing.png"), "-o", out)
	require.Error(t, err)
	assert.Contains(t, stderr, "was not found")
	assert.NoFileExists(t, out)
}

func TestSwapCmd_RequiresFlags(t *testing.T) {
	_, _, err := execute(t, "swap")
	assert.Error(t, err)
}

func TestInfoCmd(t *testing.T) {
	in := fixture(t, t.TempDir(), "in.bmp")
	out, _, err := execute(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Format:      bmp")
	assert.Contains(t, out, "Dimensions:  2 x 1")
}

func TestDemoCmd_Verify(t *testing.T) {
	dir := t.TempDir()
	in := fixture(t, dir, "in.png")

	out, _, err := execute(t, "demo", "-i", in, "--dir", dir, "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "swap round trip: verified")
	assert.Contains(t, out, "add round trip:  verified")
	assert.FileExists(t, filepath.Join(dir, pipeline.DecryptedAddPNG))
}

func TestRoot_RunsDemoInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	fixture(t, dir, pipeline.DemoInput)
	chdir(t, dir)

	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "--- Running Channel Swapping Encryption ---")
	for _, name := range []string{pipeline.EncryptedSwapPNG, pipeline.DecryptedSwapPNG, pipeline.EncryptedAddPNG, pipeline.DecryptedAddPNG} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestRoot_MissingDemoInputDoesNotFail(t *testing.T) {
	chdir(t, t.TempDir())
	_, stderr, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Error: The file 'R.jpeg' was not found.")
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	in := fixture(t, dir, "in.png")
	logPath := filepath.Join(dir, "ctl.log")

	_, _, err := execute(t, "--log-level", "info", "--log-file", logPath, "swap", "-i", in, "-o", filepath.Join(dir, "o.png"))
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "image encrypted")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
