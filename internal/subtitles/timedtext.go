package subtitles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// timedTextDocument couvre les deux dialectes timedtext servis par YouTube :
//   - srv1 : <transcript><text start="1.2" dur="3.4">…</text></transcript> (secondes)
//   - srv3 : <timedtext format="3"><body><p t="1200" d="3400">…</p></body></timedtext> (ms)
//
// La racine détermine le dialecte.
type timedTextDocument struct {
	XMLName xml.Name
	Texts   []srv1Text `xml:"text"`
	Body    *srv3Body  `xml:"body"`
}

type srv1Text struct {
	Start   *string `xml:"start,attr"`
	Dur     *string `xml:"dur,attr"`
	Content string  `xml:",chardata"`
}

type srv3Body struct {
	Paragraphs []srv3Paragraph `xml:"p"`
}

type srv3Paragraph struct {
	Time      *string    `xml:"t,attr"`
	Duration  *string    `xml:"d,attr"`
	Content   string     `xml:",chardata"`
	Sentences []srv3Word `xml:"s"`
}

// srv3Word : les sous-titres automatiques découpent le paragraphe en mots.
type srv3Word struct {
	Text string `xml:",chardata"`
}

func (p srv3Paragraph) text() string {
	if len(p.Sentences) == 0 {
		return p.Content
	}
	var b strings.Builder
	for _, w := range p.Sentences {
		b.WriteString(w.Text)
	}
	return b.String()
}

// ParseTimedText parse un document timedtext et retourne les cues dans
// l'ordre du document. Les entités sont décodées (XML puis HTML, YouTube
// encodant deux fois les apostrophes : "&amp;#39;").
//
// Un noeud sans attribut start/dur (ou t/d), ou avec une valeur non numérique,
// fait échouer tout le document avec model.ErrParse : pas de résultat partiel.
// Un document sans noeud retourne une liste vide.
func ParseTimedText(doc []byte) ([]Cue, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		return nil, fmt.Errorf("%w: timedtext: empty document", model.ErrParse)
	}

	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Entity = xml.HTMLEntity // tolère &nbsp; et consorts

	var d timedTextDocument
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: timedtext: %w", model.ErrParse, err)
	}

	switch d.XMLName.Local {
	case "transcript":
		return srv1Cues(d.Texts)
	case "timedtext":
		if d.Body == nil {
			return []Cue{}, nil
		}
		return srv3Cues(d.Body.Paragraphs)
	default:
		return nil, fmt.Errorf("%w: timedtext: unexpected root element <%s>", model.ErrParse, d.XMLName.Local)
	}
}

func srv1Cues(texts []srv1Text) ([]Cue, error) {
	cues := make([]Cue, 0, len(texts))
	for i, t := range texts {
		start, err := numericAttr(t.Start, "start", i)
		if err != nil {
			return nil, err
		}
		dur, err := numericAttr(t.Dur, "dur", i)
		if err != nil {
			return nil, err
		}
		cues = append(cues, Cue{
			StartSeconds:    start,
			DurationSeconds: dur,
			Text:            html.UnescapeString(t.Content),
		})
	}
	return cues, nil
}

func srv3Cues(paragraphs []srv3Paragraph) ([]Cue, error) {
	cues := make([]Cue, 0, len(paragraphs))
	for i, p := range paragraphs {
		text := html.UnescapeString(p.text())
		// paragraphes vides : marqueurs de fenêtre (a="1"), pas du contenu
		if strings.TrimSpace(text) == "" {
			continue
		}
		startMs, err := numericAttr(p.Time, "t", i)
		if err != nil {
			return nil, err
		}
		durMs, err := numericAttr(p.Duration, "d", i)
		if err != nil {
			return nil, err
		}
		cues = append(cues, Cue{
			StartSeconds:    startMs / 1000,
			DurationSeconds: durMs / 1000,
			Text:            text,
		})
	}
	return cues, nil
}

// numericAttr lit un attribut numérique obligatoire, positif ou nul.
func numericAttr(v *string, name string, index int) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: timedtext: node %d: missing %q attribute", model.ErrParse, index, name)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: timedtext: node %d: invalid %q value %q", model.ErrParse, index, name, *v)
	}
	return f, nil
}
