// Package pdftest builds PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// MakePDF returns a well-formed, unencrypted PDF with the given number of
// pages.
func MakePDF(pages int) []byte {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(72, 72, fmt.Sprintf("page %d", i+1))
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// EncryptedPDF returns a minimal PDF whose trailer carries a standard
// security handler with a non-empty user password, so any parse attempt
// without the password reports encryption. The xref offsets are computed
// while assembling so the table stays valid.
func EncryptedPDF() []byte {
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n",
		"3 0 obj\n<< /Filter /Standard /V 1 /R 2 /Length 40 /O <" +
			strings.Repeat("41", 32) + "> /U <" + strings.Repeat("42", 32) +
			"> /P -44 >>\nendobj\n",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		buf.WriteString(obj)
	}

	xrefPos := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}

	id := strings.Repeat("43", 16)
	buf.WriteString(fmt.Sprintf(
		"trailer\n<< /Size %d /Root 1 0 R /Encrypt 3 0 R /ID [<%s> <%s>] >>\n",
		len(objects)+1, id, id))
	buf.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefPos))
	return buf.Bytes()
}
