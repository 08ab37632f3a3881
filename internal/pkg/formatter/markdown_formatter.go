package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/scholar-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *entity.ExportRequest) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", reportTitle)
	fmt.Fprintf(&buf, "## %s\n\n%s\n\n", questionTitle, report.Question)
	fmt.Fprintf(&buf, "## %s\n\n%s\n\n", answerTitle, report.Answer)
	fmt.Fprintf(&buf, "## %s\n\n", excerptsTitle)

	if len(report.Excerpts) == 0 {
		fmt.Fprintf(&buf, "%s\n", noExcerptsText)
		return buf.Bytes(), nil
	}

	for _, excerpt := range report.Excerpts {
		// every line of a multi-line excerpt stays inside the quote
		fmt.Fprintf(&buf, "> %s\n\n", strings.ReplaceAll(excerpt, "\n", "\n> "))
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
