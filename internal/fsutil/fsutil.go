package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// IsDirEmpty renvoie true si le répertoire spécifié par path est vide, false sinon.
func IsDirEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}

	// Ouvre le répertoire
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Lit au plus un nom de fichier dans le répertoire
	_, err = f.Readdirnames(1)
	if err == io.EOF {
		// Pas d'entrée trouvée : dossier vide
		return true, nil
	}
	if err != nil {
		// Erreur d'accès au contenu
		return false, err
	}
	// Au moins une entrée existante → dossier non vide
	return false, nil
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture dans
// un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire.
//
// destPath : chemin complet vers le fichier cible.
// data : contenu à écrire.
// perm : permissions POSIX (ex: 0o644).
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	// repertoire parent existe ?
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	// creation fichier temp
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// cleanup si échec
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// écriture
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : les données sur disque, pas seulement en cache
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// set permission (best-effort)
	_ = os.Chmod(tmpName, perm)

	// rename
	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// SaveUniqueAtomic écrit content dans outDir sous filename (ex: "abc (en).txt").
// - overwrite=false : si le fichier existe, on ajoute un suffixe _1, _2, ... avant l'extension
// - overwrite=true  : on écrase directement
// L'écriture passe toujours par WriteFileAtomic. Retourne le chemin final du fichier.
func SaveUniqueAtomic(outDir, filename string, content []byte, overwrite bool) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename empty")
	}
	if outDir == "" {
		outDir = "."
	}

	final := filepath.Join(outDir, filename)

	// gestion collision si on ne veut pas overwrite
	if !overwrite && exists(final) {
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		const maxAttempts = 1000
		found := false
		for i := 1; i <= maxAttempts; i++ {
			candidate := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", base, i, ext))
			if !exists(candidate) {
				final = candidate
				found = true
				break
			}
		}
		// au bout des essais : fallback timestamp
		if !found {
			final = filepath.Join(outDir, fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext))
		}
	}

	if err := WriteFileAtomic(final, content, 0o644); err != nil {
		return "", err
	}
	return final, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
