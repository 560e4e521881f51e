package yt

import (
	"strings"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// DefaultPreferredLanguage : marqueur de langue préférée par défaut
// (nom affiché de la piste anglaise).
const DefaultPreferredLanguage = "English"

// RankTracks ordonne les pistes selon le marqueur preferred, en deux passes
// stables explicites :
//  1. partition : noms contenant preferred d'abord, le reste ensuite ;
//  2. promotion : les noms exactement égaux à preferred passent en tête.
//
// Résultat : correspondance exacte -> autres pistes contenant le marqueur ->
// tout le reste, chaque groupe dans son ordre d'origine.
// La slice d'entrée n'est pas modifiée.
func RankTracks(tracks []model.CaptionTrack, preferred string) model.Tracks {
	containing, others := partitionTracks(tracks, func(t model.CaptionTrack) bool {
		return strings.Contains(t.DisplayName, preferred)
	})
	ordered := append(containing, others...)

	exact, rest := partitionTracks(ordered, func(t model.CaptionTrack) bool {
		return t.DisplayName == preferred
	})
	return append(exact, rest...)
}

// partitionTracks sépare tracks selon keep, en conservant l'ordre relatif
// de chaque côté. Les deux slices retournées sont neuves.
func partitionTracks(tracks []model.CaptionTrack, keep func(model.CaptionTrack) bool) (in, out model.Tracks) {
	in = make(model.Tracks, 0, len(tracks))
	out = make(model.Tracks, 0, len(tracks))
	for _, t := range tracks {
		if keep(t) {
			in = append(in, t)
		} else {
			out = append(out, t)
		}
	}
	return in, out
}
