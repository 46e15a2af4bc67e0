// Package document renders contract drafts from a DOCX template: simple
// {{ placeholder }} substitution plus injection of the payment-schedule rows
// into the template's tables, without disturbing the rest of the layout.
package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// DocumentPart is the main body part of a WordprocessingML package.
const DocumentPart = "word/document.xml"

// Archive is an in-memory DOCX (OPC zip) package. Part order is preserved on
// rewrite; some producers are picky about [Content_Types].xml coming first.
type Archive struct {
	names []string
	parts map[string][]byte
}

// OpenArchive parses a DOCX byte slice into its parts.
func OpenArchive(data []byte) (*Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	archive := &Archive{parts: make(map[string][]byte, len(reader.File))}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open docx part %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read docx part %s: %w", file.Name, err)
		}
		archive.names = append(archive.names, file.Name)
		archive.parts[file.Name] = content
	}
	return archive, nil
}

// Part returns the raw content of a package part.
func (a *Archive) Part(name string) ([]byte, bool) {
	content, ok := a.parts[name]
	return content, ok
}

// SetPart replaces or adds a package part.
func (a *Archive) SetPart(name string, content []byte) {
	if _, exists := a.parts[name]; !exists {
		a.names = append(a.names, name)
	}
	a.parts[name] = content
}

// Bytes serializes the package back into a DOCX byte slice.
func (a *Archive) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range a.names {
		part, err := writer.Create(name)
		if err != nil {
			return nil, fmt.Errorf("write docx part %s: %w", name, err)
		}
		if _, err := part.Write(a.parts[name]); err != nil {
			return nil, fmt.Errorf("write docx part %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx archive: %w", err)
	}
	return buf.Bytes(), nil
}
