package assets

import "embed"

//go:embed ytranscript.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "ytranscript.example.yaml"

// TemplatesDir : dossier des templates, dans Embedded comme à côté du binaire.
const TemplatesDir = "templates"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
// Ce sont des chemins relatifs DANS Embedded (ex: "templates/transcript_note.md.tmpl").
var DefaultTemplatePaths = []string{
	"templates/transcript_note.md.tmpl",
}
