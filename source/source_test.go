package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	mock_source "github.com/ph1losof/korni/source/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFromString(t *testing.T) {
	b, err := FromString("KEY=value\n").Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("KEY=value\n"), b)
}

func TestFromBytes(t *testing.T) {
	b, err := FromBytes([]byte("KEY=value\n")).Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("KEY=value\n"), b)
}

func TestFromReader(t *testing.T) {
	b, err := FromReader(bytes.NewBufferString("KEY=value\n")).Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("KEY=value\n"), b)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("KEY=value\n"), 0o644))

	b, err := FromFile(path).Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("KEY=value\n"), b)
}

func TestFromFile_MissingReturnsError(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.env")).Bytes()
	require.Error(t, err)
}

func TestFind_AscendsToAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("A=1\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := Find(".env", nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ".env"), path)
}

func TestFind_NotFound(t *testing.T) {
	_, err := Find(".this-file-should-never-exist", t.TempDir())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMockSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_source.NewMockSource(ctrl)
	m.EXPECT().Bytes().Times(1).Return([]byte("A=1\n"), nil)

	b, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("A=1\n"), b)
}
