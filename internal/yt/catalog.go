package yt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/patrickprogramme/ytranscript/internal/fetch"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const baseWatchURL = youtubeOrigin + "/watch?v="

var ErrEmptyVideoID = errors.New("identifiant de vidéo vide")

// WatchURL retourne l'URL de la page de la vidéo.
func WatchURL(videoID string) string {
	return baseWatchURL + url.QueryEscape(videoID)
}

// ResolveTracks récupère la page de la vidéo et retourne les pistes de
// sous-titres classées selon preferred (voir RankTracks).
//
// Erreurs (à tester avec errors.Is) :
//   - model.ErrNoCaptions : pas de manifeste dans la page
//   - model.ErrNoTracks   : manifeste présent, liste vide
//   - model.ErrParse      : manifeste mal formé
//   - model.ErrNetwork    : échec du fetch de la page
func ResolveTracks(ctx context.Context, f fetch.Fetcher, videoID, preferred string) (model.Tracks, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrEmptyVideoID
	}
	page, err := f.Fetch(ctx, WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("resolve tracks %s: %w", videoID, err)
	}
	tracks, err := TracksFromPage(page, preferred)
	if err != nil {
		return nil, fmt.Errorf("resolve tracks %s: %w", videoID, err)
	}
	return tracks, nil
}

// TracksFromPage : version pure de ResolveTracks, à partir du HTML déjà récupéré.
func TracksFromPage(page, preferred string) (model.Tracks, error) {
	manifest, err := extractManifest(page)
	if err != nil {
		return nil, err
	}
	tracks, err := parseTracks(manifest)
	if err != nil {
		return nil, err
	}
	return RankTracks(tracks, preferred), nil
}
