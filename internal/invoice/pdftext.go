package invoice

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextMode selects how PDF text is reconstructed.
type TextMode int

const (
	// ModePlain joins each row's words with single spaces. Good enough
	// for signature detection and free-form layouts.
	ModePlain TextMode = iota
	// ModeLayout preserves column alignment by padding large horizontal
	// gaps, so per-line patterns can rely on multi-space column breaks.
	ModeLayout
)

// ExtractText pulls text out of a PDF, one line per visual row.
func ExtractText(data []byte, mode TextMode) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction crashed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	if reader.NumPage() == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		var pageText string
		if mode == ModeLayout {
			pageText = layoutPageText(page)
		} else {
			pageText = plainPageText(page)
		}
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no text could be extracted")
	}
	return strings.Join(pages, "\n"), nil
}

// plainPageText joins row words with single spaces.
func plainPageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// layoutPageText reconstructs rows from raw text objects, grouping by Y
// coordinate and padding wide X gaps so column boundaries survive as runs
// of two or more spaces.
func layoutPageText(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return plainPageText(page)
	}

	type textItem struct {
		x float64
		w float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, w: t.W, s: t.S})
	}

	// PDF Y runs bottom-to-top.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

		var sb strings.Builder
		var prevEnd float64
		for j, item := range items {
			if j > 0 {
				gap := item.x - prevEnd
				switch {
				case gap > 12:
					// Column break: keep it visible as 2+ spaces,
					// roughly proportional to the gap.
					pad := int(gap / 4)
					if pad < 2 {
						pad = 2
					}
					sb.WriteString(strings.Repeat(" ", pad))
				case gap > 1:
					sb.WriteString(" ")
				}
			}
			sb.WriteString(item.s)
			prevEnd = item.x + item.w
		}
		line := strings.TrimRight(sb.String(), " ")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
