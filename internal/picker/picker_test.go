package picker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/intake/internal/workflow"
)

func touch(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "data.csv", "a,b\n")

	files, err := Resolve(path, OptionsFor(workflow.ModeCSV))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, workflow.FileRef{Name: "data.csv", Path: path, Size: 4, MediaType: "text/csv"}, files[0])
}

func TestResolveKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, dir, "b.wav", "RIFF")
	a := touch(t, dir, "a.mp3", "ID3")

	files, err := Resolve(b+", "+a, OptionsFor(workflow.ModeAudio))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "b.wav", files[0].Name)
	assert.Equal(t, "a.mp3", files[1].Name)
}

func TestResolveExpandsAudioDirectoryWithFilter(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "02.wav", "RIFF")
	touch(t, dir, "01.mp3", "ID3")
	touch(t, dir, "cover.jpg", "jpg")
	touch(t, dir, ".hidden.mp3", "ID3")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err := Resolve(dir, OptionsFor(workflow.ModeAudio))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "01.mp3", files[0].Name)
	assert.Equal(t, "audio/mpeg", files[0].MediaType)
	assert.Equal(t, "02.wav", files[1].Name)
}

func TestResolveExplicitFilesAreNotFiltered(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, dir, "b.pdf", "%PDF-1.4")

	files, err := Resolve(pdf, OptionsFor(workflow.ModeAudio))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "application/pdf", files[0].MediaType)
}

func TestResolveRejectsDirectoryForSingleFileModes(t *testing.T) {
	_, err := Resolve(t.TempDir(), OptionsFor(workflow.ModeCSV))
	assert.ErrorIs(t, err, ErrDirectoryNotAllowed)
}

func TestResolveMissingFile(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.csv"), OptionsFor(workflow.ModeCSV))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.mp3", "ID3")
	touch(t, dir, "a.mp3", "ID3")

	files, err := Resolve(filepath.Join(dir, "*.mp3"), OptionsFor(workflow.ModeAudio))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.mp3", files[0].Name)

	_, err = Resolve(filepath.Join(dir, "*.flac"), OptionsFor(workflow.ModeAudio))
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolveEmptyInput(t *testing.T) {
	files, err := Resolve("  , ", OptionsFor(workflow.ModeCSV))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeclaredTypeSniffsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	plain := touch(t, dir, "README", "just some words\n")
	assert.Equal(t, "text/plain", DeclaredType(plain))

	upper := touch(t, dir, "DATA.CSV", "a,b\n")
	assert.Equal(t, "text/csv", DeclaredType(upper))

	assert.Equal(t, "", DeclaredType(filepath.Join(dir, "missing.bin")))
}

func TestSplitInput(t *testing.T) {
	assert.Equal(t, []string{"a.mp3", "b c.wav", "d.flac"}, SplitInput(` a.mp3 ,"b c.wav",, 'd.flac'`))
}
