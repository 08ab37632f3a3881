package entity

// NoEvidenceAnswer is returned when retrieval finds nothing relevant
const NoEvidenceAnswer = "I couldn't find any relevant information in the document to answer your question."

// ContextSeparator joins excerpts into the answering context
const ContextSeparator = "\n\n---\n\n"

type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation"
	ErrorKindGenerationService ErrorKind = "generation_service"
	ErrorKindInvalidResult     ErrorKind = "invalid_result"
	ErrorKindInternal          ErrorKind = "internal"
)

// AskRequest is the caller-facing request of one question-answering turn
type AskRequest struct {
	Question   string `json:"question"`
	PDFContent string `json:"pdfContent"`
}

// TurnResult is either a success (Answer + Excerpts) or a failure (Error + ErrorKind).
// On failure both Answer and Excerpts are nil so they serialize as null.
type TurnResult struct {
	Success   bool      `json:"success"`
	Answer    *string   `json:"answer"`
	Excerpts  []string  `json:"excerpts"`
	Error     string    `json:"error,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
}

// NewSuccessTurn builds a success result; a nil excerpt set becomes an empty list
func NewSuccessTurn(answer string, excerpts []string) *TurnResult {
	if excerpts == nil {
		excerpts = []string{}
	}
	return &TurnResult{
		Success:  true,
		Answer:   &answer,
		Excerpts: excerpts,
	}
}

func NewFailedTurn(kind ErrorKind, message string) *TurnResult {
	return &TurnResult{
		Success:   false,
		Error:     message,
		ErrorKind: kind,
	}
}
