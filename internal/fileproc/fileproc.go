package fileproc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractText extrait le texte d'un fichier uploadé d'après son nom.
// Formats supportés: PDF, DOCX, TXT, MD. Retourne le texte et le type.
func ExtractText(filename string, content []byte) (text string, fileType string, err error) {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".pdf"):
		text, err = extractPDF(content)
		return text, "pdf", err
	case strings.HasSuffix(lower, ".doc"):
		return "", "", fmt.Errorf("old .doc format not supported, please convert to .docx")
	case strings.HasSuffix(lower, ".docx"):
		text, err = extractDOCX(content)
		return text, "docx", err
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return strings.TrimSpace(DecodeText(content)), "txt", nil
	default:
		return "", "", fmt.Errorf("unsupported file format: %s (supported: PDF, DOCX, TXT, MD)", filename)
	}
}

func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to process PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to process PDF page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Structures minimales du document.xml d'un .docx (un zip d'XML):
// on ne lit que les paragraphes (w:p) et leurs runs de texte (w:t).
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Texts []string `xml:"r>t"`
}

func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to process Word document: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to process Word document: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("failed to process Word document: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("failed to process Word document: missing word/document.xml")
	}

	var doc docxDocument
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return "", fmt.Errorf("failed to process Word document: %w", err)
	}

	var sb strings.Builder
	for _, p := range doc.Body.Paragraphs {
		for _, t := range p.Texts {
			sb.WriteString(t)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// DecodeText décode des octets en UTF-8, avec repli latin-1 sinon.
func DecodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes)
}

// ValidateTextLength vérifie que le texte extrait est exploitable.
func ValidateTextLength(text string, maxLength int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is empty")
	}
	if len(text) > maxLength {
		return fmt.Errorf("text too long (%d chars), maximum: %d chars", len(text), maxLength)
	}
	return nil
}

// ChunkText découpe un texte long en morceaux avec recouvrement,
// en coupant de préférence en fin de phrase.
func ChunkText(text string, chunkSize, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end < len(text) {
			// Chercher une fin de phrase dans les 200 derniers caractères
			searchStart := end - 200
			if searchStart < start {
				searchStart = start
			}
			if idx := strings.LastIndex(text[searchStart:end], ". "); idx != -1 {
				end = searchStart + idx + 1
			}
		} else {
			end = len(text)
		}

		chunks = append(chunks, strings.TrimSpace(text[start:end]))
		if end == len(text) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}
