package signing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstamp/sign-portal/internal/pdfinspect"
	"github.com/inkstamp/sign-portal/internal/pdftest"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestStampPreservesPageCount(t *testing.T) {
	in := writeFixture(t, "in.pdf", pdftest.MakePDF(3))
	out := filepath.Join(t.TempDir(), "out.pdf")

	s := NewStamper(DefaultStampConfig("Digitally signed", "Test Suite"))
	require.NoError(t, s.Stamp(in, out, time.Now()))

	info, err := pdfinspect.InspectFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Pages)
	assert.False(t, info.Encrypted)

	original, err := os.ReadFile(in)
	require.NoError(t, err)
	stamped, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotEqual(t, original, stamped)
}

func TestStampSinglePage(t *testing.T) {
	in := writeFixture(t, "in.pdf", pdftest.MakePDF(1))
	out := filepath.Join(t.TempDir(), "out.pdf")

	s := NewStamper(DefaultStampConfig("Digitally signed", "Test Suite"))
	require.NoError(t, s.Stamp(in, out, time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)))

	info, err := pdfinspect.InspectFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)
}

func TestStampRejectsEncrypted(t *testing.T) {
	in := writeFixture(t, "locked.pdf", pdftest.EncryptedPDF())
	out := filepath.Join(t.TempDir(), "out.pdf")

	s := NewStamper(DefaultStampConfig("Digitally signed", "Test Suite"))
	err := s.Stamp(in, out, time.Now())
	assert.ErrorIs(t, err, ErrEncrypted)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStampRejectsUnreadable(t *testing.T) {
	in := writeFixture(t, "garbage.pdf", []byte("%PDF-1.4 nothing here"))
	out := filepath.Join(t.TempDir(), "out.pdf")

	s := NewStamper(DefaultStampConfig("Digitally signed", "Test Suite"))
	err := s.Stamp(in, out, time.Now())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEncrypted)
}

func TestTempFilePathCollisionFree(t *testing.T) {
	a := TempFilePath(os.TempDir(), "upload", "report.pdf")
	b := TempFilePath(os.TempDir(), "upload", "report.pdf")
	assert.NotEqual(t, a, b)
}

func TestTempFilePathSanitizesName(t *testing.T) {
	p := TempFilePath("/tmp", "upload", "../we ird/nä me.pdf")
	base := filepath.Base(p)
	assert.NotContains(t, base, " ")
	assert.NotContains(t, base, "/")
	assert.Contains(t, base, "me.pdf")

	empty := TempFilePath("/tmp", "upload", "")
	assert.Contains(t, filepath.Base(empty), "document.pdf")
}
