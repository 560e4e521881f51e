package model

import (
	"fmt"
	"math"
)

// Seconds est un alias explicite pour représenter une durée en secondes.
type Seconds int64

// RoundSeconds arrondit à la seconde la plus proche, demi-seconde vers le haut
// (2.5 -> 3).
func RoundSeconds(f float64) Seconds {
	return Seconds(math.Floor(f + 0.5))
}

// Clock formate Seconds pour l'affichage d'un horodatage de paragraphe :
// "H:MM:SS" à partir d'une heure, "MM:SS" sinon.
// Exemple : 65 -> "01:05", 3661 -> "1:01:01".
func (s Seconds) Clock() string {
	h, m, sec := s.split()
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

func (s Seconds) split() (h, m, sec int64) {
	total := int64(s)
	if total < 0 {
		total = 0
	}
	return total / 3600, (total % 3600) / 60, total % 60
}

// constantes pour les formats de fichiers de sortie
type Format string

const (
	FormatTXT      Format = "txt"
	FormatMARKDOWN Format = "md"
	FormatJSON     Format = "json"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "txt":
		return FormatTXT, nil
	case "md":
		return FormatMARKDOWN, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

func (f Format) IsTextual() bool {
	return f == FormatTXT || f == FormatMARKDOWN
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
