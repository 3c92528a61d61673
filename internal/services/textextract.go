package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

var ErrUnsupportedFileType = errors.New("unsupported file type, use PDF or PPTX")

// TextExtractor turns uploaded lecture files into plain text.
type TextExtractor interface {
	// ExtractFile routes on the file extension and returns the extracted
	// text plus the lecture source type it maps to.
	ExtractFile(filename string, data []byte) (text string, sourceType string, err error)
	ExtractPDF(data []byte) (string, error)
	ExtractPPTX(data []byte) (string, error)
}

type textExtractor struct {
	log *logger.Logger
}

func NewTextExtractor(baseLog *logger.Logger) TextExtractor {
	return &textExtractor{log: baseLog.With("service", "TextExtractor")}
}

func (s *textExtractor) ExtractFile(filename string, data []byte) (string, string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := s.ExtractPDF(data)
		return text, domain.SourcePDF, err
	case ".pptx":
		text, err := s.ExtractPPTX(data)
		return text, domain.SourcePPTX, err
	default:
		return "", "", ErrUnsupportedFileType
	}
}

// ExtractPDF concatenates page text in page order. Pages with no
// extractable text contribute nothing.
func (s *textExtractor) ExtractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("could not read PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			s.log.Warn("pdf page extraction failed", "page", i, "error", err)
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// ExtractPPTX pulls visible text from every slide, slides in deck order,
// shapes in document order. Slides are joined by blank lines.
func (s *textExtractor) ExtractPPTX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("could not read PPTX: %w", err)
	}

	type slide struct {
		index int
		file  *zip.File
	}
	var slides []slide
	for _, f := range archive.File {
		if n, ok := slideNumber(f.Name); ok {
			slides = append(slides, slide{index: n, file: f})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].index < slides[j].index })

	var parts []string
	for _, sl := range slides {
		text, err := slideText(sl.file)
		if err != nil {
			s.log.Warn("pptx slide extraction failed", "slide", sl.index, "error", err)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func slideNumber(name string) (int, bool) {
	const prefix = "ppt/slides/slide"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".xml"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	var runs []string
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "t" {
			continue
		}
		var content string
		if err := decoder.DecodeElement(&content, &start); err != nil {
			return "", err
		}
		if strings.TrimSpace(content) != "" {
			runs = append(runs, content)
		}
	}
	return strings.Join(runs, "\n"), nil
}
