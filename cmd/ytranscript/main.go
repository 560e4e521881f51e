package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/ytranscript/internal/app"
	"github.com/patrickprogramme/ytranscript/internal/assets"
	"github.com/patrickprogramme/ytranscript/internal/bootstrap"
	"github.com/patrickprogramme/ytranscript/internal/config"
	"github.com/patrickprogramme/ytranscript/internal/logger"
	"github.com/patrickprogramme/ytranscript/internal/obsidian"
	"github.com/patrickprogramme/ytranscript/internal/ui"
)

func main() {
	flags, resetTemplates := parseFlags()

	// déterminer binDir : config et templates vivent à côté de l'exécutable
	binDir := "."
	if exePath, err := os.Executable(); err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, config.DefaultFilename)
	}

	// s'assurer que le fichier config existe, si non on le crée
	created, err := bootstrap.EnsureConfigPresent(flags.ConfigPath, assets.Embedded, assets.DefaultConfigAsset)
	if err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	} else if created {
		fmt.Printf("info : fichier de configuration par défaut créé : %s\n", flags.ConfigPath)
	}

	// templates modifiables dans binDir/templates
	tplDir := filepath.Join(binDir, assets.TemplatesDir)
	if resetTemplates {
		status, err := bootstrap.ExportDefaults(assets.Embedded, assets.TemplatesDir, tplDir, true)
		if err != nil {
			log.Fatalf("export templates: %v", err)
		}
		for name, st := range status {
			fmt.Printf("%s : %s\n", name, st)
		}
	} else if err := bootstrap.EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
		log.Printf("warning: ensure templates present: %v", err)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()
	lg.Debug("config loaded", "path", cfg.Path(), "format", cfg.OutputFormat, "preferred", cfg.PreferredLanguage)

	renderer, err := obsidian.DefaultRenderer(binDir)
	if err != nil {
		log.Fatalf("impossible de construire le renderer: %v", err)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags, renderer, lg)
	if err := a.Run(ctx); err != nil {
		lg.Sync()
		log.Fatalf("app run: %v", err)
	}

	// lancement interactif (double-clic) : laisser la fenêtre ouverte
	if flags.URL == "" {
		_ = tui.WaitForExit(ctx)
	}
}

func parseFlags() (*app.CLIFlags, bool) {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "", "chemin du fichier de configuration (défaut : à côté de l'exécutable)")
	flag.StringVar(&f.URL, "url", "", "URL ou identifiant de la vidéo YouTube (optionnel)")
	flag.StringVar(&f.Lang, "lang", "", "piste préférée, ex: English (remplace preferred_language)")
	flag.StringVar(&f.Format, "format", "", "format de sortie : txt, md ou json (remplace output_format)")
	flag.StringVar(&f.OutDir, "out", "", "dossier de sortie (remplace output_dir)")
	flag.BoolVar(&f.Clipboard, "clipboard", false, "copier le transcript dans le presse-papier")
	reset := flag.Bool("reset-templates", false, "réécrire les templates par défaut (avec sauvegarde)")
	flag.Parse()
	return f, *reset
}
