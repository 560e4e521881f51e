package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrEmptyText : on ne copie pas une chaîne vide (ça viderait le presse-papier).
var ErrEmptyText = errors.New("le texte à copier ne peut pas être vide")

// Clipboard : accès texte au presse-papier. System utilise celui de l'OS ;
// les tests injectent leur propre implémentation.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System est le presse-papier de l'OS (atotto/clipboard).
type System struct{}

func (System) ReadAll() (string, error) { return ReadAll() }

func (System) WriteAll(text string) error { return WriteAll(text) }

// ReadAll lit le contenu texte du presse-papier.
// Retourne une chaîne de caractères et une erreur éventuelle.
func ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("presse-papier non disponible sur ce système")
	}
	return clipboard.ReadAll()
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Retourne une erreur si l'opération échoue.
func WriteAll(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	return clipboard.WriteAll(text)
}

// Equals vérifie si le contenu actuel de c est strictement égal à text.
// En cas d'erreur de lecture, retourne false.
// Sert à vérifier qu'une copie a bien pris.
func Equals(c Clipboard, text string) bool {
	current, err := c.ReadAll()
	if err != nil {
		return false
	}
	return current == text
}
