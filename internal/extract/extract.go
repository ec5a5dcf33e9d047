package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Page holds the extracted text of a single document page.
type Page struct {
	Number  int    `json:"page_number"`
	Content string `json:"content"`
}

// Document is the per-page extraction result for one upload.
type Document struct {
	Pages    []Page `json:"pages"`
	NumPages int    `json:"num_pages"`
}

var ErrUnsupportedType = errors.New("unsupported file type")

// SupportedExtensions lists the upload formats the extractor accepts.
func SupportedExtensions() []string {
	return []string{".pdf", ".pptx", ".ppt", ".docx", ".txt"}
}

// Extract parses the uploaded file into ordered per-page text.
// The page numbering is 1-based and dense; NumPages == len(Pages).
func Extract(filename string, data []byte) (Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		pages []Page
		err   error
	)
	switch ext {
	case ".pdf":
		pages, err = extractPDF(data)
	case ".pptx", ".ppt":
		pages, err = extractPPTX(data)
	case ".docx":
		pages, err = extractDOCX(data)
	case ".txt":
		pages = parsePagedText(string(data))
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return Document{}, err
	}
	if len(pages) == 0 {
		return Document{}, fmt.Errorf("no pages extracted from %s", filename)
	}

	// Renumber densely so page N is always Pages[N-1].
	for i := range pages {
		pages[i].Number = i + 1
	}
	return Document{Pages: pages, NumPages: len(pages)}, nil
}

// parsePagedText splits text framed as "Page N:" sections, the format the
// tutoring prompts were designed around. Text without page headers becomes a
// single page.
func parsePagedText(content string) []Page {
	var (
		pages   []Page
		current []string
		started bool
	)
	flush := func() {
		if started {
			pages = append(pages, Page{Content: strings.TrimSpace(strings.Join(current, "\n"))})
		}
		current = current[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		if _, ok := pageHeader(line); ok {
			flush()
			started = true
			continue
		}
		if strings.TrimSpace(line) == "Text content:" {
			continue
		}
		current = append(current, line)
	}
	flush()

	if len(pages) == 0 {
		trimmed := strings.TrimSpace(content)
		if trimmed == "" {
			return nil
		}
		return []Page{{Content: trimmed}}
	}
	return pages
}

func pageHeader(line string) (int, bool) {
	if !strings.HasPrefix(line, "Page ") {
		return 0, false
	}
	head, _, ok := strings.Cut(line, ":")
	if !ok {
		return 0, false
	}
	fields := strings.Fields(head)
	if len(fields) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
