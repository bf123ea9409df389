// Package i18n maps message keys and backend error codes to localized
// strings. Bundles are YAML files embedded at build time.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

// DefaultLanguage is used when a key is missing from the requested bundle.
const DefaultLanguage = "en"

// GeneralErrorKey is the fallback for unmapped backend error codes.
const GeneralErrorKey = "general"

// Catalogue holds all loaded language bundles.
type Catalogue struct {
	bundles map[string]map[string]string
}

// Load parses the embedded bundles. The file name (minus extension) is
// the language tag.
func Load() (*Catalogue, error) {
	entries, err := fs.ReadDir(bundleFS, "bundles")
	if err != nil {
		return nil, fmt.Errorf("read bundles: %w", err)
	}

	c := &Catalogue{bundles: make(map[string]map[string]string)}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".yaml")
		raw, err := bundleFS.ReadFile("bundles/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read bundle %s: %w", entry.Name(), err)
		}
		messages := make(map[string]string)
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("parse bundle %s: %w", entry.Name(), err)
		}
		c.bundles[lang] = messages
	}

	if _, ok := c.bundles[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("default bundle %q missing", DefaultLanguage)
	}
	return c, nil
}

// Lookup returns the message for key in lang, falling back to the
// default language. Unknown keys return the key itself so a missing
// translation is visible rather than silent.
func (c *Catalogue) Lookup(lang, key string) string {
	if msg, ok := c.bundles[lang][key]; ok {
		return msg
	}
	if msg, ok := c.bundles[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// ErrorMessage maps a backend error code to a localized string. Codes
// without a bound message render the general error text.
func (c *Catalogue) ErrorMessage(lang, code string) string {
	if code != "" {
		if msg, ok := c.bundles[lang][code]; ok {
			return msg
		}
		if msg, ok := c.bundles[DefaultLanguage][code]; ok {
			return msg
		}
	}
	return c.Lookup(lang, GeneralErrorKey)
}

// Languages lists the loaded bundle tags.
func (c *Catalogue) Languages() []string {
	out := make([]string, 0, len(c.bundles))
	for lang := range c.bundles {
		out = append(out, lang)
	}
	return out
}
