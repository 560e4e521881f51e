package model

import (
	"errors"
	"fmt"
)

// Erreurs du pipeline de sous-titres. Chaque étape les enveloppe avec %w,
// on les distingue donc avec errors.Is.
var (
	// ErrNoCaptions : la page de la vidéo ne contient pas de manifeste de sous-titres.
	// Cas attendu (la plupart des vidéos n'en ont pas), pas une erreur fatale pour l'app.
	ErrNoCaptions = errors.New("no captions available for this video")

	// ErrNoTracks : manifeste présent mais liste de pistes vide.
	// Enveloppe ErrNoCaptions : errors.Is(ErrNoTracks, ErrNoCaptions) == true.
	ErrNoTracks = fmt.Errorf("%w: caption track list is empty", ErrNoCaptions)

	// ErrNetwork : échec de transport (requête, statut HTTP, lecture du corps).
	ErrNetwork = errors.New("network error")

	// ErrParse : document mal formé à n'importe quelle étape de parsing.
	ErrParse = errors.New("parse error")
)
