package document

import (
	"github.com/futig/scholar-backend/internal/entity"
)

func toDocumentDTO(doc *entity.Document, includeText bool) *entity.DocumentDTO {
	dto := &entity.DocumentDTO{
		ID:         doc.ID,
		Filename:   doc.Filename,
		PageCount:  len(doc.Pages),
		TextLength: len(doc.Text),
		UploadedAt: doc.UploadedAt,
	}

	if includeText {
		dto.Text = doc.Text
	}

	return dto
}
