package pdfinspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstamp/sign-portal/internal/pdftest"
)

func TestInspectWellFormed(t *testing.T) {
	data := pdftest.MakePDF(3)

	info, err := Inspect(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 3, info.Pages)
	assert.False(t, info.Encrypted)
}

func TestInspectEncrypted(t *testing.T) {
	data := pdftest.EncryptedPDF()

	info, err := Inspect(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.True(t, info.Encrypted)
}

func TestInspectGarbage(t *testing.T) {
	data := []byte("%PDF-1.4 this is not a real document")

	_, err := Inspect(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestInspectNotAPDFAtAll(t *testing.T) {
	data := []byte("hello world, definitely plain text")

	_, err := Inspect(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestInspectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, pdftest.MakePDF(1), 0o644))

	info, err := InspectFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)

	_, err = InspectFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
