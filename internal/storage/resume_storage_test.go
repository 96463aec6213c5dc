package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpool_WritesAndDeletes(t *testing.T) {
	s, err := NewResumeStorage(t.TempDir(), 1)
	require.NoError(t, err)

	file, err := s.Spool(context.Background(), "../../etc/My CV.PDF", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, "My CV.PDF", file.Name)
	assert.EqualValues(t, len("%PDF-1.4 body"), file.Size)
	assert.True(t, strings.HasSuffix(file.Path, ".pdf"))

	f, err := s.Open(file)
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "%PDF-1.4 body", string(body))

	require.NoError(t, s.Delete(file))
	_, err = os.Stat(file.Path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(file))
}

func TestSpool_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewResumeStorage(dir, 1)
	require.NoError(t, err)

	_, err = s.Spool(context.Background(), "big.pdf", bytes.NewReader(make([]byte, 1024*1024+1)))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpool_CanceledContext(t *testing.T) {
	s, err := NewResumeStorage(t.TempDir(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Spool(ctx, "cv.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_RejectsForeignPath(t *testing.T) {
	s, err := NewResumeStorage(t.TempDir(), 1)
	require.NoError(t, err)

	_, err = s.Open(&SpooledFile{Path: "/etc/passwd"})
	assert.Error(t, err)
}
