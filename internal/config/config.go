package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/ytranscript/internal/assets"
	"github.com/patrickprogramme/ytranscript/internal/fsutil"
	"github.com/patrickprogramme/ytranscript/internal/subtitles"
	"github.com/patrickprogramme/ytranscript/internal/yt"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// DefaultFilename : nom du fichier de config cherché à côté de l'exécutable.
const DefaultFilename = "ytranscript.yaml"

// SegmenterConfig : bornes du découpage en paragraphes.
type SegmenterConfig struct {
	TimeLimitSeconds int    `yaml:"time_limit_seconds"`
	CharSoftLimit    int    `yaml:"char_soft_limit"`
	CharHardLimit    int    `yaml:"char_hard_limit"`
	Terminator       string `yaml:"terminator"`
}

// FetchConfig : paramètres des requêtes HTTP (page vidéo et timedtext).
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxBytes       int64  `yaml:"max_bytes"`
	UserAgent      string `yaml:"user_agent"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Organisation
	SaveInSubdir bool `yaml:"save_in_subdir"`

	// Sortie
	OutputFormat    string `yaml:"output_format"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`
	SaveRawCaptions bool   `yaml:"save_raw_captions"`

	// Sous-titres
	PreferredLanguage string `yaml:"preferred_language"`

	Segmenter SegmenterConfig `yaml:"segmenter"`
	Fetch     FetchConfig     `yaml:"fetch"`

	// Logs : "dev", "prod" ou "quiet"
	LogMode string `yaml:"log_mode"`

	ConfigVersion int `yaml:"config_version"`

	// anciennes clés (fichiers en version 0), vidées par la migration
	LegacyTranscriptFormat string `yaml:"transcript_format,omitempty"`
	LegacySaveRawSubs      *bool  `yaml:"save_raw_subs,omitempty"`

	configFilePath string
}

// Valeurs par défaut
const (
	defaultOutputDir      = "."
	defaultOutputFormat   = "txt"
	defaultLogMode        = "quiet"
	defaultTimeoutSeconds = 15
	defaultMaxBytes       = 10_000_000
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultPreferredLang  = yt.DefaultPreferredLanguage
)

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = defaultOutputDir

	// Organisation
	c.SaveInSubdir = false

	// Sortie
	c.OutputFormat = defaultOutputFormat
	c.CopyToClipboard = false
	c.SaveRawCaptions = false

	// Sous-titres
	c.PreferredLanguage = defaultPreferredLang

	// Segmenter
	c.Segmenter.TimeLimitSeconds = subtitles.DefaultTimeLimit
	c.Segmenter.CharSoftLimit = subtitles.DefaultCharSoftLimit
	c.Segmenter.CharHardLimit = subtitles.DefaultCharHardLimit
	c.Segmenter.Terminator = subtitles.DefaultTerminator

	// HTTP
	c.Fetch.TimeoutSeconds = defaultTimeoutSeconds
	c.Fetch.MaxBytes = defaultMaxBytes
	c.Fetch.UserAgent = defaultUserAgent

	c.LogMode = defaultLogMode
	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut, normalisée.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFilename
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration %s invalide : %w", path, err)
	}
	return cfg, nil
}

// parse déserialise data dans une config pré-remplie par les défauts :
// les champs absents conservent les valeurs par défaut.
func parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	// clé config_version absente : fichier antérieur au versionnage
	cfg.ConfigVersion = 0

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalizeConfig()
	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	// chemins Windows : backslashes -> slashes, sur le dossier de sortie seulement
	c.OutputDir = strings.ReplaceAll(strings.TrimSpace(c.OutputDir), `\`, "/")
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	c.OutputDir = filepath.Clean(c.OutputDir)

	// Trim and normalize strings
	c.OutputFormat = strings.TrimSpace(strings.ToLower(c.OutputFormat))
	if c.OutputFormat == "" {
		c.OutputFormat = defaultOutputFormat
	}
	c.LogMode = strings.TrimSpace(strings.ToLower(c.LogMode))
	if c.LogMode == "" {
		c.LogMode = defaultLogMode
	}
	c.PreferredLanguage = strings.TrimSpace(c.PreferredLanguage)
	if c.PreferredLanguage == "" {
		c.PreferredLanguage = defaultPreferredLang
	}

	// HTTP : valeurs absurdes -> défauts
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = defaultMaxBytes
	}
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	// le Segmenter n'est pas corrigé ici : Validate refuse les bornes incohérentes
}

// Path retourne le chemin du fichier chargé ("" pour une config en mémoire).
func (c *Config) Path() string {
	return c.configFilePath
}

// SegmenterOptions convertit la section segmenter pour le package subtitles.
func (c *Config) SegmenterOptions() subtitles.Options {
	return subtitles.Options{
		TimeLimit:     c.Segmenter.TimeLimitSeconds,
		CharSoftLimit: c.Segmenter.CharSoftLimit,
		CharHardLimit: c.Segmenter.CharHardLimit,
		Terminator:    c.Segmenter.Terminator,
	}
}

// FetchTimeout : timeout par requête HTTP.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
