package subtitles

import "strings"

// boundaryKind décrit où tombe la dernière fin de phrase d'un cue.
type boundaryKind int

const (
	noTerminator boundaryKind = iota // aucun terminator dans le texte
	endsSentence                     // le texte se termine sur un terminator (espaces finaux ignorés)
	midSentence                      // une nouvelle phrase commence après le dernier terminator
)

func (k boundaryKind) String() string {
	switch k {
	case noTerminator:
		return "none"
	case endsSentence:
		return "end"
	case midSentence:
		return "mid"
	default:
		return "unknown"
	}
}

// findSentenceBoundary localise la coupure juste après le dernier terminator
// de text.
//   - noTerminator : cut == -1
//   - endsSentence : cut == len(text), rien d'autre que des espaces après le terminator
//   - midSentence  : text[:cut] finit par le terminator, text[cut:] contient la suite
//
// cut est un offset en octets ; text[:cut]+text[cut:] == text.
func findSentenceBoundary(text, terminator string) (int, boundaryKind) {
	if terminator == "" {
		return -1, noTerminator
	}
	i := strings.LastIndex(text, terminator)
	if i < 0 {
		return -1, noTerminator
	}
	cut := i + len(terminator)
	if strings.TrimSpace(text[cut:]) == "" {
		return len(text), endsSentence
	}
	return cut, midSentence
}
