package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Faultbox/setools/pkg/formats"
)

// fileKind is the format of a file as detected from its magic.
type fileKind int

const (
	kindUnknown fileKind = iota
	kindAnim
	kindModel
)

func (k fileKind) String() string {
	switch k {
	case kindAnim:
		return "SEAnim"
	case kindModel:
		return "SEModel"
	default:
		return "unknown"
	}
}

// detectKind inspects the leading magic bytes.
func detectKind(head []byte) fileKind {
	switch {
	case bytes.HasPrefix(head, []byte("SEModel")):
		return kindModel
	case bytes.HasPrefix(head, []byte("SEAnim")):
		return kindAnim
	default:
		return kindUnknown
	}
}

// document is a decoded file of either kind. Exactly one field is set.
type document struct {
	kind  fileKind
	anim  *formats.SEAnim
	model *formats.SEModel
}

// openDocument reads and decodes path, picking the codec from the magic.
func openDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := &document{kind: detectKind(data)}
	switch doc.kind {
	case kindAnim:
		doc.anim, err = formats.ParseSEAnim(data)
	case kindModel:
		doc.model, err = formats.ParseSEModel(data)
	default:
		return nil, fmt.Errorf("%s: not an SEAnim or SEModel file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// writeFile encodes the document to path.
func (d *document) writeFile(path string) error {
	if d.anim != nil {
		return d.anim.WriteFile(path)
	}
	return d.model.WriteFile(path)
}
