package bootstrap

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/ytranscript/internal/fsutil"
)

// Statuts retournés par ExportDefaults, par fichier embarqué.
const (
	StatusWritten     = "written"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (different)"
	StatusOverwritten = "overwritten"
)

// ExportDefaults copie récursivement tous les fichiers sous srcPrefix (dans fsys)
// vers destDir en préservant la hiérarchie relative.
// - force : si true, écrase les fichiers différents (avec backup)
//
// Retourne une map[embeddedPath]status et une erreur globale si Walk échoue.
func ExportDefaults(fsys fs.FS, srcPrefix, destDir string, force bool) (map[string]string, error) {
	status := make(map[string]string)

	err := fs.WalkDir(fsys, srcPrefix, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		// chemins embarqués : toujours des slashs
		rel := p
		if srcPrefix != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, srcPrefix), "/")
		}
		destPath := filepath.Join(destDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("lecture de la ressource embarquée %s : %w", p, err)
		}

		existing, err := os.ReadFile(destPath)
		switch {
		case err != nil && !os.IsNotExist(err):
			return fmt.Errorf("lecture de %s : %w", destPath, err)
		case err == nil && bytes.Equal(existing, data):
			status[p] = StatusUnchanged
			return nil
		case err == nil && !force:
			status[p] = StatusSkipped
			return nil
		case err == nil:
			// force == true -> backup + overwrite
			backup := destPath + ".bak." + time.Now().Format("20060102T150405")
			if err := fsutil.WriteFileAtomic(backup, existing, 0o644); err != nil {
				return fmt.Errorf("backup failed for %s: %w", destPath, err)
			}
			if err := fsutil.WriteFileAtomic(destPath, data, 0o644); err != nil {
				return err
			}
			status[p] = StatusOverwritten
			return nil
		}

		// dest n'existe pas -> écrire atomiquement
		if err := fsutil.WriteFileAtomic(destPath, data, 0o644); err != nil {
			return err
		}
		status[p] = StatusWritten
		return nil
	})

	return status, err
}

// EnsureTemplatesPresent s'assure que les templates listés existent sur disque.
//
// - tplDir  : dossier destination sur disque (ex: binDir/templates)
// - srcFiles: liste explicite de chemins DANS fsys (ex: "templates/transcript_note.md.tmpl")
//
// Le dossier est créé si besoin ; seuls les fichiers absents sont copiés.
// Les fichiers existants (éventuellement modifiés par l'utilisateur) ne sont
// jamais remplacés.
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	// le parent doit exister : on ne crée pas d'arborescence arbitraire
	parent := filepath.Dir(tplDir)
	if st, err := os.Stat(parent); err != nil {
		return fmt.Errorf("répertoire parent %s : %w", parent, err)
	} else if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
	}

	// dossier vide -> tout copier, sans stat fichier par fichier
	empty, err := fsutil.IsDirEmpty(tplDir)
	if err != nil {
		return fmt.Errorf("échec lors de la vérification du répertoire %s : %w", tplDir, err)
	}

	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, path.Base(src))
		if !empty {
			if _, err := os.Stat(dest); err == nil {
				continue
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
			}
		}
		if err := copyEmbedded(fsys, src, dest); err != nil {
			return err
		}
	}
	return nil
}

func copyEmbedded(fsys fs.FS, src, dest string) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
	}
	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture de %s : %w", dest, err)
	}
	return nil
}
