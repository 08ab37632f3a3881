package render

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/futig/scholar-backend/internal/entity"
)

// telegramMessageLimit is the maximum message length accepted by Telegram
const telegramMessageLimit = 4096

const (
	MsgWelcome = `👋 Hi! I answer questions about PDF documents.

Send me a PDF file, then ask anything about it. Every answer comes with the excerpts it is based on.`

	MsgHelp = `🤖 <b>Commands</b>

/start - Show the welcome message
/help - Show this help
/reset - Forget the current document

<b>How it works</b>
1. Send a PDF file
2. Ask questions in plain text
3. Read the answer and the supporting excerpts`

	MsgDocumentReceived = `📄 Got <b>%s</b> (%d pages). Ask me anything about it.`
	MsgExtracting       = `⏳ Reading the document...`
	MsgReset            = `🗑 Document forgotten. Send a new PDF to continue.`
	MsgNoDocument       = `📎 Send me a PDF file first, then ask your question.`
	MsgStillProcessing  = `⏳ Still working on your previous question, please wait.`

	ErrGeneric            = `❌ Something went wrong. Try again or send /start`
	ErrUnknownCommand     = `❌ Unknown command. Send /help`
	ErrInvalidFile        = `❌ Only PDF files are supported.`
	ErrFileTooLarge       = `❌ The file is too large (max %d MB).`
	ErrEmptyDocument      = `❌ No text could be extracted from this PDF. Is it a scanned image?`
	ErrDocumentExpired    = `⌛ The document has expired. Please send it again.`
	ErrServiceUnavailable = `❌ The service is temporarily unavailable. Try again in a few minutes.`
	ErrTimeout            = `❌ The operation took too long. Try again.`
)

// RenderDocumentReceived formats the upload confirmation
func RenderDocumentReceived(filename string, pageCount int) string {
	return fmt.Sprintf(MsgDocumentReceived, html.EscapeString(filename), pageCount)
}

// RenderFileTooLarge formats the size limit error
func RenderFileTooLarge(maxBytes int64) string {
	return fmt.Sprintf(ErrFileTooLarge, maxBytes/(1024*1024))
}

// RenderTurn formats a turn result as Telegram HTML, trimmed to the message limit
func RenderTurn(result *entity.TurnResult) string {
	if !result.Success {
		return "❌ " + html.EscapeString(result.Error)
	}

	var b strings.Builder
	b.WriteString("💡 ")
	b.WriteString(html.EscapeString(*result.Answer))

	if len(result.Excerpts) > 0 {
		b.WriteString("\n\n<b>Supporting excerpts</b>")
		for i, excerpt := range result.Excerpts {
			fmt.Fprintf(&b, "\n\n%d. <blockquote>%s</blockquote>", i+1, html.EscapeString(excerpt))
		}
	}

	return truncate(b.String())
}

// truncate keeps whole excerpts; an answer alone longer than the limit is cut at a rune boundary
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= telegramMessageLimit {
		return text
	}

	const closing = "</blockquote>"
	const ellipsis = "\n\n…"

	prefix := text[:min(len(text), telegramMessageLimit-utf8.RuneCountInString(ellipsis))]
	if idx := strings.LastIndex(prefix, closing); idx > 0 {
		return text[:idx+len(closing)] + ellipsis
	}

	runes := []rune(text)
	cut := string(runes[:telegramMessageLimit-1])
	if header := strings.Index(cut, "\n\n<b>"); header >= 0 {
		return cut[:header] + ellipsis
	}
	// never leave a half-written HTML entity
	if amp := strings.LastIndex(cut, "&"); amp > strings.LastIndex(cut, ";") {
		cut = cut[:amp]
	}
	return cut + "…"
}
