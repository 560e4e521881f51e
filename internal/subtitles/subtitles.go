package subtitles

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/ytranscript/internal/fetch"
)

// FetchCues télécharge le document timedtext de la piste et le parse.
//   - model.ErrNetwork : échec du fetch
//   - model.ErrParse   : document mal formé
//
// Zéro cue pour une piste valide n'est pas une erreur.
func FetchCues(ctx context.Context, f fetch.Fetcher, sourceLink string) ([]Cue, error) {
	cues, _, err := FetchCuesRaw(ctx, f, sourceLink)
	return cues, err
}

// FetchCuesRaw : comme FetchCues, mais retourne aussi le document brut
// (pour la sauvegarde optionnelle à côté de la sortie).
func FetchCuesRaw(ctx context.Context, f fetch.Fetcher, sourceLink string) ([]Cue, []byte, error) {
	doc, err := f.Fetch(ctx, sourceLink)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch cues: %w", err)
	}
	raw := []byte(doc)
	cues, err := ParseTimedText(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("fetch cues: %w", err)
	}
	return cues, raw, nil
}
