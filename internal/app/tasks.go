package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/patrickprogramme/ytranscript/internal/fetch"
	"github.com/patrickprogramme/ytranscript/internal/fsutil"
	"github.com/patrickprogramme/ytranscript/internal/logger"
	"github.com/patrickprogramme/ytranscript/internal/obsidian"
	"github.com/patrickprogramme/ytranscript/internal/subtitles"
	"github.com/patrickprogramme/ytranscript/internal/yt"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// Pipeline enchaîne les quatre étapes pour une vidéo :
// pistes -> cues -> segments -> rendu.
type Pipeline struct {
	Fetcher   fetch.Fetcher
	Preferred string            // marqueur de la piste préférée (ex: "English")
	Options   subtitles.Options // bornes du Segmenter
	Log       *logger.Logger
}

// Result est la sortie d'un passage du pipeline.
type Result struct {
	RunID      string
	Transcript subtitles.Transcript
	Tracks     model.Tracks // toutes les pistes, dans l'ordre de préférence
	Raw        []byte       // document timedtext brut de la piste retenue
}

// Run exécute le pipeline. Erreurs (errors.Is) : model.ErrNoCaptions,
// model.ErrNoTracks, model.ErrNetwork, model.ErrParse, ou l'erreur du ctx.
// Le fetch des cues n'est jamais lancé si le ctx est déjà annulé.
func (p Pipeline) Run(ctx context.Context, videoID string) (*Result, error) {
	runID := uuid.NewString()
	log := p.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("run_id", runID, "video_id", videoID)
	started := time.Now()

	// 1) catalogue des pistes
	tracks, err := yt.ResolveTracks(ctx, p.Fetcher, videoID, p.Preferred)
	if err != nil {
		log.Debug("track resolution failed", "error", err)
		return nil, err
	}
	track := tracks[0]
	log.Info("tracks resolved", "count", len(tracks), "chosen", track.DisplayName, "kind", track.Kind)

	// 2) cues
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cues, raw, err := subtitles.FetchCuesRaw(ctx, p.Fetcher, track.SourceLink)
	if err != nil {
		log.Debug("cue fetch failed", "error", err)
		return nil, err
	}
	log.Debug("cues parsed", "count", len(cues), "bytes", len(raw))

	// 3) segments + 4) rendu
	segments := subtitles.SegmentCues(cues, p.Options)
	display := subtitles.Render(segments, videoID)
	log.Info("transcript built",
		"segments", len(display),
		"elapsed_ms", time.Since(started).Milliseconds(),
	)

	return &Result{
		RunID:      runID,
		Transcript: subtitles.NewTranscript(videoID, track, display),
		Tracks:     tracks,
		Raw:        raw,
	}, nil
}

// encodeTranscript produit le contenu du fichier de sortie selon le format.
func encodeTranscript(res *Result, format model.Format, renderer *obsidian.Renderer, now time.Time) ([]byte, error) {
	tr := res.Transcript
	switch format {
	case model.FormatTXT:
		return []byte(tr.Plain()), nil
	case model.FormatJSON:
		return tr.JSON()
	case model.FormatMARKDOWN:
		if renderer == nil {
			return nil, fmt.Errorf("format md : aucun renderer de note configuré")
		}
		return renderer.Render(obsidian.NoteTemplate, obsidian.NewNoteData(tr, res.Tracks, now))
	default:
		return nil, fmt.Errorf("format inconnu : %q", format)
	}
}

// SaveTranscript écrit le transcript dans outDir et retourne le chemin final.
// Un fichier existant est écrasé (même vidéo, même piste, même format).
func SaveTranscript(content []byte, tr subtitles.Transcript, format model.Format, outDir string) (string, error) {
	filename, err := tr.Filename(format)
	if err != nil {
		return "", fmt.Errorf("SaveTranscript: %w", err)
	}
	path, err := fsutil.SaveUniqueAtomic(outDir, filename, content, true)
	if err != nil {
		return "", fmt.Errorf("write transcript %s: %w", filepath.Join(outDir, filename), err)
	}
	return path, nil
}

// SaveRaw sauvegarde le document timedtext brut à côté de la sortie.
func SaveRaw(raw []byte, tr subtitles.Transcript, outDir string) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("SaveRaw: pas de données à sauvegarder")
	}
	path := filepath.Join(outDir, tr.RawFilename())
	if err := fsutil.WriteFileAtomic(path, raw, filePerm); err != nil {
		return "", fmt.Errorf("write raw captions %s: %w", path, err)
	}
	return path, nil
}
