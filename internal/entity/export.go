package entity

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ExportRequest is one answered turn to be rendered as a downloadable report
type ExportRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Excerpts []string `json:"excerpts"`
}
