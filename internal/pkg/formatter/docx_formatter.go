package formatter

import (
	"bytes"

	"github.com/futig/scholar-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(report *entity.ExportRequest) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading := func(style, text string) {
		par := doc.AddParagraph()
		par.SetStyle(style)
		par.AddRun().AddText(text)
	}
	paragraph := func(text string) {
		doc.AddParagraph().AddRun().AddText(text)
	}

	heading("Title", reportTitle)

	heading("Heading1", questionTitle)
	paragraph(report.Question)

	heading("Heading1", answerTitle)
	paragraph(report.Answer)

	heading("Heading1", excerptsTitle)
	if len(report.Excerpts) == 0 {
		paragraph(noExcerptsText)
	}
	for _, excerpt := range report.Excerpts {
		par := doc.AddParagraph()
		par.SetStyle("Quote")
		par.AddRun().AddText(excerpt)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
