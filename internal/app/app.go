package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/ytranscript/internal/clipboard"
	"github.com/patrickprogramme/ytranscript/internal/config"
	"github.com/patrickprogramme/ytranscript/internal/fetch"
	"github.com/patrickprogramme/ytranscript/internal/fsutil"
	"github.com/patrickprogramme/ytranscript/internal/logger"
	"github.com/patrickprogramme/ytranscript/internal/obsidian"
	"github.com/patrickprogramme/ytranscript/internal/ui"
	"github.com/patrickprogramme/ytranscript/internal/yt"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const filePerm = 0o644

// ErrInvalidVideo : l'entrée n'est ni une URL YouTube ni un identifiant de vidéo.
var ErrInvalidVideo = errors.New("URL ou identifiant de vidéo invalide")

// CLIFlags contient les information venant des flags de l'app.
// Une valeur vide laisse la config décider.
type CLIFlags struct {
	ConfigPath string
	URL        string
	Lang       string
	Format     string
	OutDir     string
	Clipboard  bool
}

// App orchestre les différentes dépendances (UI, fetch, FS, presse-papier...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	fetcher  fetch.Fetcher
	renderer *obsidian.Renderer
	clip     clipboard.Clipboard
	log      *logger.Logger
	now      func() time.Time
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, renderer *obsidian.Renderer, log *logger.Logger) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		fetcher:  fetch.NewClient(cfg.FetchTimeout(), cfg.Fetch.MaxBytes, cfg.Fetch.UserAgent),
		renderer: renderer,
		clip:     clipboard.System{},
		log:      log,
		now:      time.Now,
	}
}

// Run exécute le flux principal : URL -> pipeline -> fichier(s) -> presse-papier.
// L'absence de sous-titres n'est pas une erreur : un message, puis nil.
func (a *App) Run(ctx context.Context) error {
	// Récupération de l'URL : priorité flag > clipboard > prompt
	input := a.flags.URL
	if input == "" {
		u, err := a.ui.GetYtURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		input = u
	}
	videoID, ok := yt.VideoID(input)
	if !ok {
		return fmt.Errorf("%w : %q", ErrInvalidVideo, input)
	}

	format, err := model.ParseFormat(strings.ToLower(firstNonEmpty(a.flags.Format, a.cfg.OutputFormat)))
	if err != nil {
		return err
	}

	p := Pipeline{
		Fetcher:   a.fetcher,
		Preferred: firstNonEmpty(a.flags.Lang, a.cfg.PreferredLanguage),
		Options:   a.cfg.SegmenterOptions(),
		Log:       a.log,
	}
	res, err := p.Run(ctx, videoID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoCaptions):
			a.ui.PrintInfo(ctx, fmt.Sprintf("Aucun sous-titre disponible pour la vidéo %s.", videoID))
			return nil
		case errors.Is(err, context.Canceled):
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("transcript %s: %w", videoID, err)
	}
	a.ui.PrintInfo(ctx, res.Tracks.Pretty())

	// préparation dossier de sortie + sauvegardes
	outDir := firstNonEmpty(a.flags.OutDir, a.cfg.OutputDir)
	if a.cfg.SaveInSubdir {
		outDir = filepath.Join(outDir, fsutil.SanitizeFilename(videoID))
	}

	content, err := encodeTranscript(res, format, a.renderer, a.now())
	if err != nil {
		return err
	}
	outPath, err := SaveTranscript(content, res.Transcript, format, outDir)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde du transcript: %w", err)
	}
	a.log.Info("transcript written", "run_id", res.RunID, "path", outPath, "format", format.String())
	a.ui.PrintInfo(ctx, fmt.Sprintf("Transcript écrit (%d paragraphes) :\n%s", len(res.Transcript.Segments), outPath))

	if a.cfg.SaveRawCaptions {
		rawPath, err := SaveRaw(res.Raw, res.Transcript, outDir)
		if err != nil {
			return err
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Sous-titres bruts : %s", rawPath))
	}

	if a.flags.Clipboard || a.cfg.CopyToClipboard {
		a.copyTranscript(ctx, content, format, res)
	}
	return nil
}

// copyTranscript copie le transcript dans le presse-papier. Un échec n'est
// pas fatal : le fichier est déjà écrit.
func (a *App) copyTranscript(ctx context.Context, content []byte, format model.Format, res *Result) {
	// json : on copie le texte seul, d'un bloc
	text := string(content)
	if !format.IsTextual() {
		text = res.Transcript.Collapsed()
	}
	if strings.TrimSpace(text) == "" {
		a.ui.PrintInfo(ctx, "Transcript vide : rien à copier.")
		return
	}
	if err := a.clip.WriteAll(text); err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("warning: copie dans le presse-papier impossible: %v", err))
		return
	}
	if !clipboard.Equals(a.clip, text) {
		a.ui.PrintError(ctx, "warning: le presse-papier ne contient pas le transcript après la copie")
		return
	}
	a.ui.PrintInfo(ctx, "Transcript copié dans le presse-papier.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
