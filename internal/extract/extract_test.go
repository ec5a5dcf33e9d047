package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestExtractPagedText(t *testing.T) {
	content := "Page 1:\nText content:\nIntro to regression\n\nPage 2:\nText content:\nLeast squares\n\nPage 3:\nText content:\nResiduals"

	doc, err := Extract("lecture.txt", []byte(content))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.NumPages != 3 {
		t.Fatalf("NumPages = %d, want 3", doc.NumPages)
	}
	if doc.NumPages != len(doc.Pages) {
		t.Fatalf("NumPages = %d but len(Pages) = %d", doc.NumPages, len(doc.Pages))
	}
	if !strings.Contains(doc.Pages[1].Content, "Least squares") {
		t.Fatalf("page 2 content = %q, want least squares text", doc.Pages[1].Content)
	}
	for i, p := range doc.Pages {
		if p.Number != i+1 {
			t.Fatalf("page %d has Number = %d", i, p.Number)
		}
	}
}

func TestExtractPlainTextSinglePage(t *testing.T) {
	doc, err := Extract("notes.txt", []byte("just a blob of notes\nwith two lines"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.NumPages != 1 {
		t.Fatalf("NumPages = %d, want 1", doc.NumPages)
	}
	if !strings.Contains(doc.Pages[0].Content, "two lines") {
		t.Fatalf("page 1 content = %q", doc.Pages[0].Content)
	}
}

func TestExtractEmptyTextRejected(t *testing.T) {
	if _, err := Extract("empty.txt", []byte("   \n \n")); err == nil {
		t.Fatalf("Extract() on empty text succeeded, want error")
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	_, err := Extract("malware.exe", []byte("MZ"))
	if err == nil {
		t.Fatalf("Extract() on .exe succeeded, want error")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("error = %v, want unsupported file type", err)
	}
}

func TestExtractPPTXOrdersSlides(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// Write slides out of order; extraction must sort by slide number.
	for _, n := range []int{2, 1, 3} {
		f, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", n))
		if err != nil {
			t.Fatalf("create slide %d: %v", n, err)
		}
		fmt.Fprintf(f, `<p:sld><a:t>slide %d text</a:t></p:sld>`, n)
	}
	if _, err := zw.Create("ppt/slides/_rels/slide1.xml.rels"); err != nil {
		t.Fatalf("create rels: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	doc, err := Extract("deck.pptx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.NumPages != 3 {
		t.Fatalf("NumPages = %d, want 3", doc.NumPages)
	}
	for i, want := range []string{"slide 1 text", "slide 2 text", "slide 3 text"} {
		if got := doc.Pages[i].Content; got != want {
			t.Fatalf("page %d content = %q, want %q", i+1, got, want)
		}
	}
}

func TestExtractPPTXWithoutSlides(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("docProps/app.xml"); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if _, err := Extract("deck.pptx", buf.Bytes()); err == nil {
		t.Fatalf("Extract() on slideless pptx succeeded, want error")
	}
}

func TestWordMLTextIgnoresStructuralTags(t *testing.T) {
	// Tables and tabs use tags sharing the <w:t prefix; only real text
	// runs may contribute to the output.
	xml := `<w:document><w:body>` +
		`<w:tbl><w:tr><w:tc><w:tcPr/><w:p><w:r><w:t>cell one</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>cell two</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:tab/><w:t>indented</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">after table</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := wordMLText(xml)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("wordMLText() leaked markup: %q", got)
	}
	for _, want := range []string{"cell one", "cell two", "indented", "after table"} {
		if !strings.Contains(got, want) {
			t.Fatalf("wordMLText() = %q, missing %q", got, want)
		}
	}
}

func TestPageHeader(t *testing.T) {
	cases := []struct {
		line string
		num  int
		ok   bool
	}{
		{"Page 4:", 4, true},
		{"Page 12: overview", 12, true},
		{"Page:", 0, false},
		{"Page x:", 0, false},
		{"Pages 4:", 0, false},
		{"  Page 4:", 0, false},
	}
	for _, tc := range cases {
		num, ok := pageHeader(tc.line)
		if ok != tc.ok || num != tc.num {
			t.Fatalf("pageHeader(%q) = (%d, %v), want (%d, %v)", tc.line, num, ok, tc.num, tc.ok)
		}
	}
}
