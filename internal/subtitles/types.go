package subtitles

import (
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// Cue est une entrée brute du document timedtext, dans l'ordre du document.
// Text peut contenir des sauts de ligne et de la ponctuation ; il n'est jamais
// retouché (pas de trim) pour que le découpage reste sans perte.
type Cue struct {
	StartSeconds    float64 `json:"start"`
	DurationSeconds float64 `json:"dur"`
	Text            string  `json:"text"`
}

// Segment est un paragraphe construit par le Segmenter à partir d'un ou
// plusieurs cues contigus.
type Segment struct {
	StartSeconds model.Seconds // début arrondi à la seconde
	Text         string        // fragments joints par un espace, "\n" -> " "
}

// DisplaySegment est l'unité finale exposée au consommateur (note, JSON, UI).
type DisplaySegment struct {
	StartSeconds model.Seconds `json:"start_seconds"`
	Label        string        `json:"label"`     // "MM:SS" ou "H:MM:SS"
	DeepLink     string        `json:"deep_link"` // lien vers la vidéo à cet instant
	Text         string        `json:"text"`
}

// Bornes par défaut du Segmenter.
const (
	DefaultTimeLimit     = 60  // secondes
	DefaultCharSoftLimit = 300 // au-delà, on cherche une fin de phrase
	DefaultCharHardLimit = 500 // au-delà, on coupe sans condition
	DefaultTerminator    = "."
)

// Options paramètre le Segmenter. Les valeurs nulles prennent les défauts.
type Options struct {
	TimeLimit     int    // durée max d'un paragraphe, en secondes
	CharSoftLimit int    // seuil souple, en runes
	CharHardLimit int    // seuil dur, en runes
	Terminator    string // marque de fin de phrase
}

// DefaultOptions retourne les bornes par défaut (60 s, 300/500 runes, ".").
func DefaultOptions() Options {
	return Options{
		TimeLimit:     DefaultTimeLimit,
		CharSoftLimit: DefaultCharSoftLimit,
		CharHardLimit: DefaultCharHardLimit,
		Terminator:    DefaultTerminator,
	}
}

func (o Options) withDefaults() Options {
	if o.TimeLimit <= 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.CharSoftLimit <= 0 {
		o.CharSoftLimit = DefaultCharSoftLimit
	}
	if o.CharHardLimit <= 0 {
		o.CharHardLimit = DefaultCharHardLimit
	}
	if o.Terminator == "" {
		o.Terminator = DefaultTerminator
	}
	return o
}
