package formatter

import (
	"bytes"
	"os"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the gofpdf family name of the UTF-8 font
	pdfFontName = "DejaVuSans"

	// Docker images copy fonts next to the binary
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	// pdfFallbackFont is a core font and cannot render text outside Latin-1
	pdfFallbackFont = "Arial"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, path := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(report *entity.ExportRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := pdfFallbackFont
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		pdf.AddUTF8Font(pdfFontName, "I", fontPath)
		fontName = pdfFontName
		translate = func(s string) string { return s }
	}

	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, translate(title))
		pdf.Ln(10)
	}
	body := func(style, text string) {
		pdf.SetFont(fontName, style, 12)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, translate(text), "", "", false)
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, translate(reportTitle))
	pdf.Ln(12)

	section(questionTitle)
	body("", report.Question)

	section(answerTitle)
	body("", report.Answer)

	section(excerptsTitle)
	if len(report.Excerpts) == 0 {
		body("", noExcerptsText)
	}
	for _, excerpt := range report.Excerpts {
		body("I", excerpt)
		pdf.Ln(2)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
