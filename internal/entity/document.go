package entity

import "time"

// Document is an uploaded PDF together with its extracted text.
// It lives only in the in-memory document cache.
type Document struct {
	ID         string
	Filename   string
	Pages      []string
	Text       string
	UploadedAt time.Time
}

type FileData struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExtractionResponse struct {
	Pages []string `json:"pages,omitempty"`
	Text  string   `json:"text,omitempty"`
}

type DocumentDTO struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	PageCount  int       `json:"page_count"`
	TextLength int       `json:"text_length"`
	Text       string    `json:"text,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type DocumentAskRequest struct {
	Question string `json:"question"`
}

type HighlightRequest struct {
	Document string   `json:"document"`
	Excerpts []string `json:"excerpts"`
}

type DocumentHighlightRequest struct {
	Excerpts []string `json:"excerpts"`
}

type HighlightSegment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

type HighlightResponse struct {
	Segments []HighlightSegment `json:"segments"`
	HTML     string             `json:"html"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
