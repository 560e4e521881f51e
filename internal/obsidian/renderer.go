package obsidian

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/patrickprogramme/ytranscript/internal/assets"
	"github.com/patrickprogramme/ytranscript/internal/fsutil"
)

// NoteTemplate : nom (basename) du template de note.
const NoteTemplate = "transcript_note.md.tmpl"

// Renderer gère parsing paresseux (lazy) des templates et fournit des méthodes de rendu.
type Renderer struct {
	templates *template.Template // templates parsés
	fsys      fs.FS              // source des templates (embed.FS ou os.DirFS)
	patterns  []string           // patterns relatifs au fsys, ex: "*.md.tmpl"
	once      sync.Once          // protège l'initialisation paresseuse
	err       error              // mémorise l'erreur d'initialisation (utile avec once)
}

// NewRendererFromFS construit un Renderer configuré pour parser ultérieurement les patterns
// fournis depuis le fsys (ne parse pas immédiatement).
func NewRendererFromFS(fsys fs.FS, patterns []string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("aucun template fourni")
	}
	return &Renderer{
		fsys:     fsys,
		patterns: append([]string(nil), patterns...),
	}, nil
}

// DefaultRenderer lit les templates dans binDir/templates (modifiables par
// l'utilisateur) ; si le dossier est absent ou vide, il utilise les templates
// embarqués. Le parsing est fait tout de suite.
func DefaultRenderer(binDir string) (*Renderer, error) {
	fsys, err := templatesFS(filepath.Join(binDir, assets.TemplatesDir))
	if err != nil {
		return nil, err
	}
	r, err := NewRendererFromFS(fsys, []string{NoteTemplate})
	if err != nil {
		return nil, err
	}
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	return r, nil
}

func templatesFS(tplDir string) (fs.FS, error) {
	if empty, err := fsutil.IsDirEmpty(tplDir); err == nil && !empty {
		if _, err := os.Stat(filepath.Join(tplDir, NoteTemplate)); err == nil {
			return os.DirFS(tplDir), nil
		}
	}
	sub, err := fs.Sub(assets.Embedded, assets.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("templates embarqués: %w", err)
	}
	return sub, nil
}

// parseTemplates effectue le parsing des templates une seule fois (sync.Once).
func (r *Renderer) parseTemplates() error {
	r.once.Do(func() {
		t := template.New("root").Funcs(baseFuncMap())
		for _, p := range r.patterns {
			var parseErr error
			t, parseErr = t.ParseFS(r.fsys, p)
			if parseErr != nil {
				// stoppe ici : on remonte l'erreur immédiatement
				r.err = fmt.Errorf("parse pattern %q: %w", p, parseErr)
				return
			}
		}
		r.templates = t
	})
	return r.err
}

// ParseNow force l'initialisation / parsing immédiat et retourne l'erreur si problème.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.parseTemplates()
}

// Render exécute le template nommé tmplName (basename du fichier .tmpl) avec data.
// Assure le parsing paresseux avant exécution.
func (r *Renderer) Render(tmplName string, data NoteData) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	if err := r.parseTemplates(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// baseFuncMap construit la liste des fonctions exposées aux templates.
func baseFuncMap() template.FuncMap {
	return template.FuncMap{
		// YAML helpers
		"yamlList": yamlListBlock,

		// Markdown helpers
		"markdownList":   markdownListPure,
		"joinHashtags":   joinHashtagsPure,
		"formatSegments": formatSegmentsPure,
		"capitalize":     fsutil.CapitalizeFirst,

		// Callouts
		"warning": calloutFunc("warning"),
		"note":    calloutFunc("note"),
	}
}
