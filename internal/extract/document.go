package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// Scanned PDFs from the local document flow carry OCR artifacts and an
// agreement stamp block that add noise to summaries.
var (
	ocrArtifactRe    = regexp.MustCompile(`/\d+"'.*?\w+\s*[<>].*?[(),.\-]`)
	agreementStampRe = regexp.MustCompile(`KELISHILDI:.*?:`)
)

// Document extracts plain text from a document file, dispatching on the
// extension of name.
func Document(data []byte, name string) Result {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfText(data)
	case ".docx", ".doc":
		// Legacy binary .doc files fail at the zip layer and surface as
		// NoTextFound; most user uploads named .doc are really docx.
		return docxText(data)
	case ".txt":
		return txtText(data)
	default:
		return Failure(KindUnsupportedFormat, fmt.Sprintf("unsupported document type %q", filepath.Ext(name)))
	}
}

func pdfText(data []byte) (res Result) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			res = Failure(KindNoTextFound, fmt.Sprintf("pdf parse: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("pdf open: %v", err))
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("pdf text: %v", err))
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("pdf read: %v", err))
	}

	text := buf.String()
	text = ocrArtifactRe.ReplaceAllString(text, " ")
	text = agreementStampRe.ReplaceAllString(text, "")
	if strings.TrimSpace(text) == "" {
		return Failure(KindNoTextFound, "pdf contains no extractable text")
	}
	return Success(text)
}

// docxText reads the main document part of a .docx archive and collects the
// text runs, one paragraph per line.
func docxText(data []byte) Result {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("docx open: %v", err))
	}
	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Failure(KindNoTextFound, "docx has no word/document.xml")
	}
	rc, err := docFile.Open()
	if err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("docx read: %v", err))
	}
	defer rc.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(KindNoTextFound, fmt.Sprintf("docx parse: %v", err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return Failure(KindNoTextFound, "docx contains no text")
	}
	return Success(text)
}

// txtText decodes plain text as UTF-8, falling back to Windows-1251 for
// legacy Cyrillic files.
func txtText(data []byte) Result {
	if utf8.Valid(data) {
		return Success(string(data))
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return Failure(KindNoTextFound, fmt.Sprintf("txt decode: %v", err))
	}
	return Success(string(decoded))
}
