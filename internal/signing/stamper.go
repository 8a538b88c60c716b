package signing

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/inkstamp/sign-portal/internal/pdfinspect"
)

const stampTimeFormat = "2006-01-02 15:04:05 MST"

// StampConfig describes the signature block drawn on every page: three
// lines of bold text, flush-right with a fixed margin from the
// bottom-right corner.
type StampConfig struct {
	Label       string
	Location    string
	FontFamily  string
	FontSize    float64 // points
	Margin      float64 // points from the right and bottom page edges
	LineSpacing float64 // multiple of font size
	ColorR      int
	ColorG      int
	ColorB      int
}

// DefaultStampConfig returns the portal's fixed stamp appearance.
func DefaultStampConfig(label, location string) StampConfig {
	return StampConfig{
		Label:       label,
		Location:    location,
		FontFamily:  "Helvetica",
		FontSize:    10,
		Margin:      24,
		LineSpacing: 1.4,
		ColorR:      0,
		ColorG:      32,
		ColorB:      96,
	}
}

// Stamper applies the signature block to each page of a PDF.
type Stamper struct {
	cfg StampConfig
}

// NewStamper creates a Stamper.
func NewStamper(cfg StampConfig) *Stamper {
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 10
	}
	if cfg.Margin <= 0 {
		cfg.Margin = 24
	}
	if cfg.LineSpacing <= 0 {
		cfg.LineSpacing = 1.4
	}
	return &Stamper{cfg: cfg}
}

// Stamp reads the PDF at inputPath, draws the signature block on every page
// at its original size and writes the result to outputPath. Encrypted
// documents fail with ErrEncrypted before any page is touched.
func (s *Stamper) Stamp(inputPath, outputPath string, signedAt time.Time) error {
	info, err := pdfinspect.InspectFile(inputPath)
	if err != nil {
		return fmt.Errorf("load pdf: %w", err)
	}
	if info.Encrypted {
		return ErrEncrypted
	}
	if info.Pages < 1 {
		return fmt.Errorf("pdf has no pages")
	}

	lines := []string{
		s.cfg.Label,
		signedAt.Format(stampTimeFormat),
		s.cfg.Location,
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()

	for page := 1; page <= info.Pages; page++ {
		tpl := imp.ImportPage(doc, inputPath, page, "/MediaBox")
		box := imp.GetPageSizes()[page]["/MediaBox"]
		w, h := box["w"], box["h"]

		doc.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(doc, tpl, 0, 0, w, h)
		s.drawBlock(doc, lines, w, h)
	}

	if doc.Err() {
		return fmt.Errorf("stamp pages: %w", doc.Error())
	}
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write signed pdf: %w", err)
	}
	return nil
}

// drawBlock renders the three lines near the bottom-right corner. The
// widest line fixes the block's left edge; every line is right-aligned
// within it so the block sits flush against the margin.
func (s *Stamper) drawBlock(doc *gofpdf.Fpdf, lines []string, pageW, pageH float64) {
	doc.SetFont(s.cfg.FontFamily, "B", s.cfg.FontSize)
	doc.SetTextColor(s.cfg.ColorR, s.cfg.ColorG, s.cfg.ColorB)

	lineH := s.cfg.FontSize * s.cfg.LineSpacing
	widest := 0.0
	for _, ln := range lines {
		if lw := doc.GetStringWidth(ln); lw > widest {
			widest = lw
		}
	}

	left := pageW - s.cfg.Margin - widest
	top := pageH - s.cfg.Margin - lineH*float64(len(lines))
	for i, ln := range lines {
		doc.SetXY(left, top+lineH*float64(i))
		doc.CellFormat(widest, lineH, ln, "", 0, "R", false, 0, "")
	}
}
