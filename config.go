package srcpatch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Marker policies. Save either removes the editor's embedding marker from
// committed output or leaves it in place.
const (
	MarkerStrip  = "strip"
	MarkerRetain = "retain"
)

// Offline token alignment modes.
const (
	AlignPositionalMode = "positional"
	AlignLCSMode        = "lcs"
)

// DefaultTags is the editable tag allow-list.
var DefaultTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "span", "li", "a", "button", "label",
	"td", "th", "blockquote", "caption", "figcaption",
	"dt", "dd", "summary", "legend",
}

// Marker identifies the script tag that embeds the editor in a page.
type Marker struct {
	Pattern string `toml:"pattern"`
	Policy  string `toml:"policy"`
}

// Activation holds the fixed triggers that toggle editing.
type Activation struct {
	Shortcut   string `toml:"shortcut"`
	Fragment   string `toml:"fragment"`
	QueryParam string `toml:"query_param"`
	QueryValue string `toml:"query_value"`
}

// Config configures an Editor and the offline reconciler.
type Config struct {
	Tags           []string   `toml:"tags"`
	ChromeSelector string     `toml:"chrome_selector"`
	Marker         Marker     `toml:"marker"`
	Activation     Activation `toml:"activation"`
	MatchEntities  bool       `toml:"match_entities"`
	Align          string     `toml:"align"`
	PreviewLen     int        `toml:"preview_len"`

	// Logger for debug/warn messages.
	Logger *slog.Logger `toml:"-"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Tags:           append([]string(nil), DefaultTags...),
		ChromeSelector: "#srcpatch-toolbar, [data-srcpatch-chrome]",
		Marker: Marker{
			Pattern: `(?is)[ \t]*<script\b[^>]*\bdata-srcpatch-editor\b[^>]*>.*?</script>[ \t]*\r?\n?`,
			Policy:  MarkerStrip,
		},
		Activation: Activation{
			Shortcut:   "ctrl+shift+e",
			Fragment:   "srcpatch",
			QueryParam: "edit",
			QueryValue: "1",
		},
		MatchEntities: true,
		Align:         AlignPositionalMode,
		PreviewLen:    40,
		Logger:        slog.Default(),
	}
}

// LoadConfig layers a TOML file on top of DefaultConfig.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field that has a closed set of values or must compile.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return fmt.Errorf("%w: tags must not be empty", ErrInvalidConfig)
	}
	switch c.Marker.Policy {
	case MarkerStrip, MarkerRetain:
	default:
		return fmt.Errorf("%w: marker.policy must be %q or %q, got %q", ErrInvalidConfig, MarkerStrip, MarkerRetain, c.Marker.Policy)
	}
	if c.Marker.Policy == MarkerStrip {
		if _, err := regexp.Compile(c.Marker.Pattern); err != nil {
			return fmt.Errorf("%w: marker.pattern: %v", ErrInvalidConfig, err)
		}
	}
	switch c.Align {
	case AlignPositionalMode, AlignLCSMode:
	default:
		return fmt.Errorf("%w: align must be %q or %q, got %q", ErrInvalidConfig, AlignPositionalMode, AlignLCSMode, c.Align)
	}
	if c.PreviewLen < 0 {
		return fmt.Errorf("%w: preview_len must not be negative", ErrInvalidConfig)
	}
	for _, t := range c.Tags {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty tag in allow-list", ErrInvalidConfig)
		}
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
