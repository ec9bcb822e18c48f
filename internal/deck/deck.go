package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	presentationPart = "ppt/presentation.xml"
	relNamespace     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	notesSlideRel    = relNamespace + "/notesSlide"
)

type implExtractor struct{}

// New creates an Extractor for PPTX decks.
func New() Extractor {
	return &implExtractor{}
}

// Notes opens the deck as an OPC package and walks
// presentation.xml -> slide parts -> notesSlide parts, so the returned
// order is the deck's slide order, not the zip entry order.
func (e *implExtractor) Notes(deckPath string) ([]string, error) {
	archive, err := zip.OpenReader(deckPath)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", deckPath, err)
	}
	defer archive.Close()

	parts := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		parts[f.Name] = f
	}

	slideParts, err := orderedSlideParts(parts)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", deckPath, err)
	}

	notes := make([]string, 0, len(slideParts))
	for _, slidePart := range slideParts {
		note, err := noteForSlide(parts, slidePart)
		if err != nil {
			return nil, fmt.Errorf("read deck %s: %w", deckPath, err)
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// orderedSlideParts resolves the slide id list against the presentation's
// relationship part and returns slide part names in deck order.
func orderedSlideParts(parts map[string]*zip.File) ([]string, error) {
	var pres struct {
		SlideIDs []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := decodePart(parts, presentationPart, &pres); err != nil {
		return nil, err
	}

	rels, err := relationshipsFor(parts, presentationPart)
	if err != nil {
		return nil, err
	}

	slideParts := make([]string, 0, len(pres.SlideIDs))
	for _, sid := range pres.SlideIDs {
		rel, ok := rels[sid.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", sid.RID)
		}
		slideParts = append(slideParts, resolveTarget(presentationPart, rel.target))
	}

	return slideParts, nil
}

// noteForSlide returns the slide's note text, or "" when the slide has no
// notesSlide part or the note body is empty.
func noteForSlide(parts map[string]*zip.File, slidePart string) (string, error) {
	rels, err := relationshipsFor(parts, slidePart)
	if err != nil {
		return "", err
	}

	notesPart := ""
	for _, rel := range rels {
		if rel.relType == notesSlideRel {
			notesPart = resolveTarget(slidePart, rel.target)
			break
		}
	}
	if notesPart == "" {
		return "", nil
	}

	var slide struct {
		Shapes []struct {
			Placeholder struct {
				Type string `xml:"type,attr"`
			} `xml:"nvSpPr>nvPr>ph"`
			Paragraphs []struct {
				Runs []struct {
					Text string `xml:"t"`
				} `xml:"r"`
			} `xml:"txBody>p"`
		} `xml:"cSld>spTree>sp"`
	}
	if err := decodePart(parts, notesPart, &slide); err != nil {
		return "", err
	}

	// The note text lives in the body placeholder; the notes slide also
	// carries slide-number and image placeholders that must be ignored.
	for _, shape := range slide.Shapes {
		if shape.Placeholder.Type != "body" {
			continue
		}
		lines := make([]string, 0, len(shape.Paragraphs))
		for _, p := range shape.Paragraphs {
			var sb strings.Builder
			for _, r := range p.Runs {
				sb.WriteString(r.Text)
			}
			lines = append(lines, sb.String())
		}
		return strings.Join(lines, "\n"), nil
	}

	return "", nil
}

type relation struct {
	relType string
	target  string
}

// relationshipsFor parses the _rels part that belongs to partName. A missing
// rels part is not an error; it just means no relationships.
func relationshipsFor(parts map[string]*zip.File, partName string) (map[string]relation, error) {
	relsPart := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")

	var doc struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Type   string `xml:"Type,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if _, ok := parts[relsPart]; !ok {
		return map[string]relation{}, nil
	}
	if err := decodePart(parts, relsPart, &doc); err != nil {
		return nil, err
	}

	rels := make(map[string]relation, len(doc.Relationships))
	for _, r := range doc.Relationships {
		rels[r.ID] = relation{relType: r.Type, target: r.Target}
	}
	return rels, nil
}

// resolveTarget turns a relationship target into a package part name.
// Targets are either package-absolute ("/ppt/slides/slide1.xml") or relative
// to the source part's directory ("../notesSlides/notesSlide1.xml").
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(sourcePart), target))
}

func decodePart(parts map[string]*zip.File, name string, v interface{}) error {
	f, ok := parts[name]
	if !ok {
		return fmt.Errorf("part %s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read part %s: %w", name, err)
	}

	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse part %s: %w", name, err)
	}
	return nil
}
