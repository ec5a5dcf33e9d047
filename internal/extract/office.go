package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractPPTX reads slide text directly from the OOXML package. Each slide
// becomes one page; slides are ordered by their number in the archive name,
// not archive order.
func extractPPTX(data []byte) ([]Page, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	type slide struct {
		num  int
		text string
	}
	var slides []slide
	for _, file := range zr.File {
		num, ok := slideNumber(file.Name)
		if !ok {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open slide %d: %w", num, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read slide %d: %w", num, err)
		}
		slides = append(slides, slide{num: num, text: drawingMLText(string(raw))})
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("pptx contains no slides")
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })
	pages := make([]Page, 0, len(slides))
	for _, s := range slides {
		pages = append(pages, Page{Number: s.num, Content: strings.TrimSpace(s.text)})
	}
	return pages, nil
}

func slideNumber(name string) (int, bool) {
	const prefix = "ppt/slides/slide"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".xml"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// drawingMLText collects the <a:t> text runs from a slide's XML.
func drawingMLText(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		endIdx := strings.Index(part, "</a:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}

// extractDOCX flattens the document body to text. Word files carry no page
// boundaries, so paragraph groups are sliced into pages of a fixed size to
// keep the page-walking conversation usable.
func extractDOCX(data []byte) ([]Page, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	paragraphs := make([]string, 0, 64)
	for _, p := range strings.Split(wordMLText(content), "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("docx contains no text")
	}

	const paragraphsPerPage = 12
	var pages []Page
	for start := 0; start < len(paragraphs); start += paragraphsPerPage {
		end := start + paragraphsPerPage
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		pages = append(pages, Page{Content: strings.Join(paragraphs[start:end], "\n")})
	}
	return pages, nil
}

// wordMLText collects <w:t> runs, inserting breaks at paragraph ends.
// Only true text-run tags count; <w:tbl>, <w:tc>, <w:tab/> and friends
// share the prefix and must be skipped.
func wordMLText(xmlContent string) string {
	var text strings.Builder
	rest := xmlContent
	for {
		idx := nextTextRun(rest)
		if idx < 0 {
			break
		}
		rest = rest[idx:]
		close := strings.Index(rest, ">")
		if close < 0 {
			break
		}
		rest = rest[close+1:]
		end := strings.Index(rest, "</w:t>")
		if end < 0 {
			break
		}
		text.WriteString(rest[:end])
		rest = rest[end:]
		nextRun := nextTextRun(rest)
		if nextRun < 0 {
			nextRun = len(rest)
		}
		if para := strings.Index(rest, "</w:p>"); para >= 0 && para < nextRun {
			text.WriteString("\n")
		}
	}
	return text.String()
}

// nextTextRun finds the next opening <w:t> or <w:t ...> tag, ignoring the
// other tags that share the prefix.
func nextTextRun(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], "<w:t")
		if idx < 0 {
			return -1
		}
		idx += offset
		after := idx + len("<w:t")
		if after < len(s) && (s[after] == '>' || s[after] == ' ') {
			return idx
		}
		offset = after
	}
}
