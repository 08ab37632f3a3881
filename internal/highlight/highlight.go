// Package highlight marks excerpt occurrences inside document text.
package highlight

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/futig/scholar-backend/internal/entity"
)

type span struct {
	start, end int
}

// Segments splits text into alternating plain and highlighted runs.
// Every literal occurrence of every non-empty excerpt is highlighted;
// overlapping or adjacent occurrences merge into one run.
// Concatenating the segment texts always yields the input text.
func Segments(text string, excerpts []string) []entity.HighlightSegment {
	spans := occurrences(text, excerpts)
	if len(spans) == 0 {
		if text == "" {
			return []entity.HighlightSegment{}
		}
		return []entity.HighlightSegment{{Text: text}}
	}

	segments := make([]entity.HighlightSegment, 0, 2*len(spans)+1)
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			segments = append(segments, entity.HighlightSegment{Text: text[pos:s.start]})
		}
		segments = append(segments, entity.HighlightSegment{Text: text[s.start:s.end], Highlighted: true})
		pos = s.end
	}
	if pos < len(text) {
		segments = append(segments, entity.HighlightSegment{Text: text[pos:]})
	}

	return segments
}

// HTML renders segments as escaped HTML with <mark> runs and <br /> line breaks
func HTML(segments []entity.HighlightSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		escaped := strings.ReplaceAll(html.EscapeString(seg.Text), "\n", "<br />")
		if seg.Highlighted {
			b.WriteString("<mark>")
			b.WriteString(escaped)
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(escaped)
	}
	return b.String()
}

// Render is Segments followed by HTML
func Render(text string, excerpts []string) *entity.HighlightResponse {
	segments := Segments(text, excerpts)
	return &entity.HighlightResponse{
		Segments: segments,
		HTML:     HTML(segments),
	}
}

func occurrences(text string, excerpts []string) []span {
	var spans []span
	for _, excerpt := range excerpts {
		if excerpt == "" {
			continue
		}
		// QuoteMeta makes every excerpt a literal match
		re := regexp.MustCompile(regexp.QuoteMeta(excerpt))
		// resume one rune past each match start so self-overlapping matches are found too
		for pos := 0; pos < len(text); {
			loc := re.FindStringIndex(text[pos:])
			if loc == nil {
				break
			}
			start := pos + loc[0]
			spans = append(spans, span{start: start, end: pos + loc[1]})

			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
		}
	}

	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start == spans[j].start {
			return spans[i].end > spans[j].end
		}
		return spans[i].start < spans[j].start
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	return merged
}
