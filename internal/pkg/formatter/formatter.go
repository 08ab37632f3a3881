package formatter

import (
	"fmt"

	"github.com/futig/scholar-backend/internal/entity"
)

const (
	reportTitle    = "Document Q&A"
	questionTitle  = "Question"
	answerTitle    = "Answer"
	excerptsTitle  = "Supporting excerpts"
	noExcerptsText = "No excerpts were found in the document."
)

// Formatter renders an answered turn as a downloadable report
type Formatter interface {
	Format(report *entity.ExportRequest) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}
