package subtitles

import (
	"strings"
	"unicode/utf8"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// carryover : fin non consommée d'un cue coupé en milieu de phrase.
// Elle ouvre le segment suivant.
type carryover struct {
	start float64
	text  string
}

// segmenter porte l'état d'une passe unique sur les cues. Il n'est jamais
// partagé : chaque appel à SegmentCues crée le sien.
type segmenter struct {
	opts Options
	out  []Segment

	fragments []string // fragments du segment en cours
	start     float64  // début du segment en cours
	open      bool     // true si le segment en cours a un début
	charCount int      // runes des cues ajoutés au segment en cours
	carry     *carryover
}

// SegmentCues regroupe les cues en paragraphes bornés en durée et en longueur.
//
// Passe gloutonne de gauche à droite. Pour chaque cue, on l'ajoute au segment
// en cours puis on décide de vider (flush), dans cet ordre :
//  1. dernier cue : flush ;
//  2. durée (arrondie) depuis le début du segment > TimeLimit : flush ;
//  3. charCount > CharSoftLimit :
//     - charCount < CharHardLimit : pas de terminator -> on continue ;
//     fin de phrase nette -> flush ; phrase entamée dans le cue -> on coupe
//     après le dernier terminator, flush, et la fin du cue ouvre le segment
//     suivant (carryover) ;
//     - sinon flush sans découpe.
//
// L'ordre des cues fait foi ; rien n'est trié. Aucun caractère n'est perdu.
func SegmentCues(cues []Cue, opts Options) []Segment {
	s := &segmenter{
		opts: opts.withDefaults(),
		out:  make([]Segment, 0, len(cues)/4+1),
	}
	for i, c := range cues {
		s.step(c, i == len(cues)-1)
	}
	return s.out
}

func (s *segmenter) step(c Cue, last bool) {
	// 1) reprise de la fin du cue précédent coupé en milieu de phrase
	if s.carry != nil {
		s.fragments = append(s.fragments, s.carry.text)
		s.start = s.carry.start
		s.open = true
		s.carry = nil
	}
	// 2) nouveau segment
	if !s.open {
		s.start = c.StartSeconds
		s.open = true
	}

	// 3) ajout du cue
	s.fragments = append(s.fragments, c.Text)
	s.charCount += utf8.RuneCountInString(c.Text)
	elapsed := int(model.RoundSeconds(c.StartSeconds) - model.RoundSeconds(s.start))

	// 4) décision
	switch {
	case last:
		s.flush() // aucune carryover ne survit au dernier cue
	case elapsed > s.opts.TimeLimit:
		s.flush()
	case s.charCount > s.opts.CharSoftLimit:
		if s.charCount >= s.opts.CharHardLimit {
			s.flush() // la borne dure l'emporte sur la fin de phrase
			return
		}
		cut, kind := findSentenceBoundary(c.Text, s.opts.Terminator)
		switch kind {
		case noTerminator:
			// on attend une fin de phrase
		case endsSentence:
			s.flush()
		case midSentence:
			s.fragments[len(s.fragments)-1] = c.Text[:cut]
			s.flush()
			s.carry = &carryover{start: c.StartSeconds, text: c.Text[cut:]}
		}
	}
}

// flush pousse le segment en cours et remet l'accumulateur à zéro.
// La carryover n'est pas touchée.
func (s *segmenter) flush() {
	text := strings.ReplaceAll(strings.Join(s.fragments, " "), "\n", " ")
	s.out = append(s.out, Segment{
		StartSeconds: model.RoundSeconds(s.start),
		Text:         text,
	})
	s.fragments = nil
	s.charCount = 0
	s.open = false
}
