// Package pdfinspect answers the two structural questions the portal asks of
// a PDF: how many pages it has and whether it is encrypted. It does a
// header/xref/trailer parse only, no page rendering.
package pdfinspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/digitorus/pdf"
)

// Info describes the outcome of a structural inspection.
type Info struct {
	Pages     int
	Encrypted bool
}

// Inspect parses the document structure. Encryption is reported through
// Info.Encrypted, not as an error; any returned error means the bytes are
// not readable as a PDF.
func Inspect(r io.ReaderAt, size int64) (Info, error) {
	rdr, err := newReader(r, size)
	if err != nil {
		if isEncryptedErr(err) {
			return Info{Encrypted: true}, nil
		}
		return Info{}, err
	}

	pages, err := countPages(rdr)
	if err != nil {
		return Info{}, err
	}
	return Info{Pages: pages}, nil
}

// InspectFile inspects a PDF on disk.
func InspectFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	return Inspect(f, st.Size())
}

// The underlying reader panics on some malformed xref tables and page
// trees, so both parse steps run behind a recover.

func newReader(r io.ReaderAt, size int64) (rdr *pdflib.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdflib.NewReader(r, size)
}

func countPages(rdr *pdflib.Reader) (pages int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf page tree: %v", p)
		}
	}()
	return rdr.NumPage(), nil
}

func isEncryptedErr(err error) bool {
	if errors.Is(err, pdflib.ErrInvalidPassword) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "encrypt")
}
