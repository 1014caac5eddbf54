package launchpad

import (
	"io"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/espembed/docsembed/pkg/errors"
)

// Config is a parsed flashing config document.
type Config struct {
	TOMLVersion      float64           `toml:"esp_toml_version"`
	FirmwareImageURL string            `toml:"firmware_images_url"`
	SupportedApps    []string          `toml:"supported_apps"`
	ReadmeURL        string            `toml:"config_readme_url"`
	Description      string            `toml:"description"`
	Images           map[string]string `toml:"image"`
}

// Chipsets returns the lowercased chipset keys of the image table in sorted
// order.
func (c *Config) Chipsets() []string {
	keys := make([]string, 0, len(c.Images))
	for k := range c.Images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Image returns the firmware image name for a chipset key, if present.
func (c *Config) Image(chipset string) (string, bool) {
	img, ok := c.Images[chipset]
	return img, ok
}

// Parse decodes a flashing config document.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse launchpad config")
	}
	return &cfg, nil
}
