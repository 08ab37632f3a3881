package qa

import (
	"fmt"
	"time"

	"github.com/futig/scholar-backend/internal/entity"
)

const malformedBodyMessage = "Request body must be a JSON object."

func toMalformedTurn() *entity.TurnResult {
	return entity.NewFailedTurn(entity.ErrorKindValidation, malformedBodyMessage)
}

func exportFilename(ext string) string {
	return fmt.Sprintf("answer-%s%s", time.Now().UTC().Format("20060102-150405"), ext)
}
