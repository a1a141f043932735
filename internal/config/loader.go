package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/runeforge/internal/rings"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("segment", validateSegment)
	return v
}

// validateSegment accepts angles that land on a rune boundary.
func validateSegment(fl validator.FieldLevel) bool {
	return fl.Field().Int()%int64(rings.SegmentDegrees) == 0
}

// LoadRings loads the ring configuration.
// Search order: customPath -> ~/.runeforge/configs/rings.yaml -> ./configs/rings.yaml -> embedded default
// A custom path must exist and validate. Broken user or local files are skipped.
func LoadRings(customPath string) (RingsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RingsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRings(data)
		if err != nil {
			return RingsConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("rings.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRings(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "rings.yaml")); err == nil {
		if cfg, err := ParseRings(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseRings(defaultRingsYAML)
	if err != nil {
		return DefaultRingsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRings decodes and validates a YAML ring configuration.
func ParseRings(data []byte) (RingsConfig, error) {
	var cfg RingsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks reel bounds, rune layout and reward table.
func Validate(cfg RingsConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "RingsConfig.")
		switch e.Tag() {
		case "segment":
			msgs = append(msgs, fmt.Sprintf("%s must be a multiple of %d", field, int(rings.SegmentDegrees)))
		case "gtefield":
			msgs = append(msgs, fmt.Sprintf("%s must not be below %s", field, e.Param()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must have %s entries", field, e.Param()))
		case "unique":
			msgs = append(msgs, fmt.Sprintf("%s must have unique %s", field, e.Param()))
		case "gte", "lte":
			if strings.HasPrefix(field, "Runes[") {
				msgs = append(msgs, fmt.Sprintf("%s must be between 0 and %d", field, rings.SegmentCount-1))
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runeforge", "configs", filename)
}
