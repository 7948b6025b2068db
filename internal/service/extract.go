package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/careerbuddy/bot/internal/domain"
)

var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
	".log": true,
	".rtf": true,
}

// ExtractText pulls plain text out of a document for prompt injection. The
// returned kind labels what the file was detected as, even when no text could
// be extracted: a scanned PDF comes back as (KindPDF, ""), and the assistant
// is instructed to tell the user about it rather than hallucinate content.
func ExtractText(path string, maxChars int) (domain.AttachmentKind, string) {
	if _, err := os.Stat(path); err != nil {
		return domain.KindMissing, ""
	}

	ext := strings.ToLower(filepath.Ext(path))

	if textExtensions[ext] {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.KindText, ""
		}
		return domain.KindText, clipText(string(data), maxChars)
	}

	switch ext {
	case ".docx":
		text, err := extractDOCX(path)
		if err != nil {
			return domain.KindDOCX, ""
		}
		return domain.KindDOCX, clipText(text, maxChars)
	case ".html", ".htm":
		text, err := extractHTML(path)
		if err != nil {
			return domain.KindHTML, ""
		}
		return domain.KindHTML, clipText(text, maxChars)
	case ".pdf":
		// No text-layer extraction; the assistant asks the user to paste
		// the content instead.
		return domain.KindPDF, ""
	}

	return domain.KindUnknown, ""
}

func clipText(text string, maxChars int) string {
	t := strings.TrimSpace(text)
	runes := []rune(t)
	if len(runes) <= maxChars {
		return t
	}
	return string(runes[:maxChars]) + "\n\n[...truncated...]"
}

// extractDOCX reads word/document.xml from the docx archive and joins
// paragraph text, one line per non-empty paragraph.
func extractDOCX(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var docXML []byte
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if docXML == nil {
		return "", nil
	}

	var paragraphs []string
	var current strings.Builder

	decoder := xml.NewDecoder(bytes.NewReader(docXML))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var text string
				if err := decoder.DecodeElement(&text, &t); err != nil {
					return "", err
				}
				current.WriteString(text)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				if line := strings.TrimSpace(current.String()); line != "" {
					paragraphs = append(paragraphs, line)
				}
				current.Reset()
			}
		}
	}
	if line := strings.TrimSpace(current.String()); line != "" {
		paragraphs = append(paragraphs, line)
	}

	return strings.Join(paragraphs, "\n"), nil
}

func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	for _, raw := range strings.Split(doc.Text(), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
