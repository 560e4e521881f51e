package config

import (
	"errors"
	"fmt"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// Validate vérifie la cohérence de la configuration et retourne toutes les
// erreurs trouvées (errors.Join).
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	var errs []error

	s := c.Segmenter
	if s.TimeLimitSeconds <= 0 {
		errs = append(errs, fmt.Errorf("segmenter.time_limit_seconds doit être > 0 (reçu %d)", s.TimeLimitSeconds))
	}
	if s.CharSoftLimit <= 0 {
		errs = append(errs, fmt.Errorf("segmenter.char_soft_limit doit être > 0 (reçu %d)", s.CharSoftLimit))
	}
	if s.CharSoftLimit >= s.CharHardLimit {
		errs = append(errs, fmt.Errorf("segmenter.char_soft_limit (%d) doit être < char_hard_limit (%d)", s.CharSoftLimit, s.CharHardLimit))
	}
	if s.Terminator == "" {
		errs = append(errs, fmt.Errorf("segmenter.terminator ne peut pas être vide"))
	}

	if _, err := model.ParseFormat(c.OutputFormat); err != nil {
		errs = append(errs, fmt.Errorf("output_format: %w", err))
	}

	switch c.LogMode {
	case "dev", "prod", "production", "quiet":
	default:
		errs = append(errs, fmt.Errorf("log_mode inconnu : %q (dev, prod ou quiet)", c.LogMode))
	}

	return errors.Join(errs...)
}
