package pdfsheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	marginMM     = 25.0
	labelWidthMM = 55.0
	lineHeightMM = 5.5
	sectionGapMM = 10.0
)

type options struct {
	fontDir string
}

type Option func(*options)

// WithFontDir loads DejaVuSans.ttf and DejaVuSans-Bold.ttf from dir so the
// sheet keeps every Czech character. Without it core Helvetica is used.
func WithFontDir(dir string) Option {
	return func(o *options) { o.fontDir = dir }
}

// Render writes the sheet as PDF. Each value may span several lines; lines
// are never wrapped and pages break as needed. Empty values print "-".
func Render(w io.Writer, title string, sections []Section, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetTitle(title, true)

	family, tr := setupFont(pdf, o.fontDir)
	pageW, _ := pdf.GetPageSize()
	valueW := pageW - 2*marginMM - labelWidthMM

	pdf.AddPage()
	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(sectionGapMM / 2)

	for i, section := range sections {
		if i > 0 {
			pdf.Ln(sectionGapMM)
		}
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 8, tr(section.Title), "B", 1, "L", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont(family, "", 10)
		for _, field := range section.Fields {
			lines := valueLines(field.Value)
			pdf.CellFormat(labelWidthMM, lineHeightMM, tr(field.Label+":"), "", 0, "L", false, 0, "")
			for j, line := range lines {
				if j > 0 {
					pdf.SetX(marginMM + labelWidthMM)
				}
				pdf.CellFormat(valueW, lineHeightMM, tr(line), "", 1, "L", false, 0, "")
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func valueLines(v string) []string {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	if strings.TrimSpace(v) == "" {
		return []string{empty}
	}
	return strings.Split(strings.TrimRight(v, "\n"), "\n")
}

func setupFont(pdf *fpdf.Fpdf, dir string) (string, func(string) string) {
	if dir != "" {
		regular := filepath.Join(dir, "DejaVuSans.ttf")
		bold := filepath.Join(dir, "DejaVuSans-Bold.ttf")
		if fileExists(regular) && fileExists(bold) {
			pdf.AddUTF8Font("DejaVu", "", regular)
			pdf.AddUTF8Font("DejaVu", "B", bold)
			return "DejaVu", func(s string) string { return s }
		}
	}

	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	return "Helvetica", func(s string) string { return cp1252(asciiFold.Replace(s)) }
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// asciiFold maps the Czech and Slovak letters missing from cp1252 to their
// base letter so core fonts print something readable.
var asciiFold = strings.NewReplacer(
	"č", "c", "Č", "C", "ď", "d", "Ď", "D", "ě", "e", "Ě", "E",
	"ľ", "l", "Ľ", "L", "ĺ", "l", "Ĺ", "L", "ň", "n", "Ň", "N",
	"ř", "r", "Ř", "R", "ŕ", "r", "Ŕ", "R", "š", "s", "Š", "S",
	"ť", "t", "Ť", "T", "ů", "u", "Ů", "U", "ž", "z", "Ž", "Z",
)

// CheckFontDir reports a misconfigured font directory at startup.
func CheckFontDir(dir string) error {
	if dir == "" {
		return nil
	}
	for _, name := range []string{"DejaVuSans.ttf", "DejaVuSans-Bold.ttf"} {
		if !fileExists(filepath.Join(dir, name)) {
			return fmt.Errorf("PDF_FONT_DIR %s: missing %s", dir, name)
		}
	}
	return nil
}
