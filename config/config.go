package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// ErrUnsupportedValue reports a value the settings file cannot store verbatim.
var ErrUnsupportedValue = errors.New(`config: value contains """`)

// loadOptions keep values as typed: no inline comments, quotes preserved.
var loadOptions = ini.LoadOptions{IgnoreInlineComment: true, PreserveSurroundedQuote: true}

// DefaultPath is the settings file used when the application does not override it.
const DefaultPath = "config.ini"

const (
	sectionSound     = "SoundAlert"
	sectionSMTP      = "SMTP"
	sectionDetection = "Detection"
	sectionLogging   = "Logging"

	defaultSubject = "Motion Detected"
	defaultBody    = "Motion detected by the application."
)

// SoundAlert configures the audible alert played on motion.
type SoundAlert struct {
	Enabled   bool
	SoundFile string
	Volume    float64 // 0.0 - 1.0
}

// SMTP configures the e-mail alert. Port is kept as text, as typed by the user.
type SMTP struct {
	Enabled   bool
	Server    string
	Port      string
	Email     string
	Password  string
	Recipient string
	Subject   string
	Body      string
}

// Detection holds the persisted slider positions of the main view.
type Detection struct {
	Sensitivity     int // 0 - 100, higher is more sensitive
	CooldownSeconds int // 1 - 60
}

// Logging controls the process logger and the runtime diagnostics.
type Logging struct {
	Level string
	Debug bool
}

// Config is the full persisted settings snapshot.
type Config struct {
	Sound     SoundAlert
	SMTP      SMTP
	Detection Detection
	Logging   Logging
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Sound: SoundAlert{Enabled: false, SoundFile: "", Volume: 1.0},
		SMTP: SMTP{
			Subject: defaultSubject,
			Body:    defaultBody,
		},
		Detection: Detection{Sensitivity: 50, CooldownSeconds: 10},
		Logging:   Logging{Level: "info"},
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Sound.Volume < 0 {
		c.Sound.Volume = 0
	}
	if c.Sound.Volume > 1 {
		c.Sound.Volume = 1
	}
	if c.Detection.Sensitivity < 0 {
		c.Detection.Sensitivity = 0
	}
	if c.Detection.Sensitivity > 100 {
		c.Detection.Sensitivity = 100
	}
	if c.Detection.CooldownSeconds < 1 {
		c.Detection.CooldownSeconds = 1
	}
	if c.Detection.CooldownSeconds > 60 {
		c.Detection.CooldownSeconds = 60
	}
	c.SMTP.Port = strings.TrimSpace(c.SMTP.Port)
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		c.Logging.Level = "info"
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	clone := *c
	return &clone
}

// ParseLevel maps the textual level from the settings file to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// field binds one INI key to a Config field.
type field struct {
	section, key string
	get          func(c *Config) string
	set          func(c *Config, v string) error
}

func boolField(section, key string, p func(c *Config) *bool) field {
	return field{
		section: section, key: key,
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			*p(c) = b
			return nil
		},
	}
}

func stringField(section, key string, p func(c *Config) *string) field {
	return field{
		section: section, key: key,
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = v; return nil },
	}
}

func intField(section, key string, p func(c *Config) *int) field {
	return field{
		section: section, key: key,
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*p(c) = i
			return nil
		},
	}
}

var fields = []field{
	boolField(sectionSound, "enabled", func(c *Config) *bool { return &c.Sound.Enabled }),
	stringField(sectionSound, "sound_file", func(c *Config) *string { return &c.Sound.SoundFile }),
	{
		section: sectionSound, key: "volume",
		get: func(c *Config) string { return strconv.FormatFloat(c.Sound.Volume, 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return err
			}
			c.Sound.Volume = f
			return nil
		},
	},
	boolField(sectionSMTP, "enabled", func(c *Config) *bool { return &c.SMTP.Enabled }),
	stringField(sectionSMTP, "server", func(c *Config) *string { return &c.SMTP.Server }),
	stringField(sectionSMTP, "port", func(c *Config) *string { return &c.SMTP.Port }),
	stringField(sectionSMTP, "email", func(c *Config) *string { return &c.SMTP.Email }),
	stringField(sectionSMTP, "password", func(c *Config) *string { return &c.SMTP.Password }),
	stringField(sectionSMTP, "recipient", func(c *Config) *string { return &c.SMTP.Recipient }),
	stringField(sectionSMTP, "subject", func(c *Config) *string { return &c.SMTP.Subject }),
	stringField(sectionSMTP, "body", func(c *Config) *string { return &c.SMTP.Body }),
	intField(sectionDetection, "sensitivity", func(c *Config) *int { return &c.Detection.Sensitivity }),
	intField(sectionDetection, "cooldown", func(c *Config) *int { return &c.Detection.CooldownSeconds }),
	stringField(sectionLogging, "level", func(c *Config) *string { return &c.Logging.Level }),
	boolField(sectionLogging, "debug", func(c *Config) *bool { return &c.Logging.Debug }),
}

// Load reads the settings file at path. A missing file is created with
// defaults. Missing keys are backfilled and the file rewritten. Malformed
// values keep their defaults and are reported through the returned error
// alongside a usable Config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Save(path)
		}
		return cfg, err
	}
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	var (
		missing   bool
		malformed []error
	)
	for _, f := range fields {
		sec, err := file.GetSection(f.section)
		if err != nil || !sec.HasKey(f.key) {
			missing = true
			continue
		}
		if err := f.set(cfg, sec.Key(f.key).String()); err != nil {
			malformed = append(malformed, fmt.Errorf("%s.%s: %w", f.section, f.key, err))
			def := DefaultConfig()
			_ = f.set(cfg, f.get(def))
		}
	}
	_ = cfg.Validate()
	if missing {
		if err := cfg.Save(path); err != nil {
			malformed = append(malformed, err)
		}
	}
	if len(malformed) > 0 {
		return cfg, fmt.Errorf("config: %w", errors.Join(malformed...))
	}
	return cfg, nil
}

// Save atomically replaces the file at path with the full settings snapshot.
// Values are stored trimmed. A value containing """ is rejected with
// ErrUnsupportedValue and the file is left untouched.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	file := ini.Empty(loadOptions)
	for _, f := range fields {
		v := strings.TrimSpace(f.get(c))
		if strings.Contains(v, `"""`) {
			return fmt.Errorf("%w: %s.%s", ErrUnsupportedValue, f.section, f.key)
		}
		sec, err := file.GetSection(f.section)
		if err != nil {
			if sec, err = file.NewSection(f.section); err != nil {
				return err
			}
		}
		if _, err := sec.NewKey(f.key, v); err != nil {
			return err
		}
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".config-*.ini")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename
	if _, err := file.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// parseBool accepts the spellings written by both Go and Python tools.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
