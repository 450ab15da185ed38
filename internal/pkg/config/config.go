// Package config reads the augmentation configuration. Files ending in .yaml
// or .yml are YAML, anything else is JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ohowland/cgc_augment/internal/pkg/technology"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// DefaultSubject is the NATS subject summaries are published on.
const DefaultSubject = "augment.summary"

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("carrier", func(fl validator.FieldLevel) bool {
		return technology.Known(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Config is the root configuration.
type Config struct {
	Electricity Electricity `json:"Electricity" yaml:"electricity"`
	Costs       Costs       `json:"Costs" yaml:"costs"`
	Caverns     Caverns     `json:"Caverns" yaml:"caverns"`
	Plotting    Plotting    `json:"Plotting" yaml:"plotting"`
	Output      Output      `json:"Output" yaml:"output"`
}

// Electricity selects the extendable carriers.
type Electricity struct {
	ExtendableCarriers ExtendableCarriers `json:"ExtendableCarriers" yaml:"extendable_carriers"`
	// MaxHours links power and energy capacity of storage units, per carrier.
	MaxHours map[string]float64 `json:"MaxHours" yaml:"max_hours" validate:"dive,keys,required,endkeys,gt=0"`
}

// ExtendableCarriers lists the carriers to attach per component type.
type ExtendableCarriers struct {
	StorageUnit []string `json:"StorageUnit" yaml:"StorageUnit" validate:"unique,dive,carrier"`
	Store       []string `json:"Store" yaml:"Store" validate:"unique,dive,carrier"`
	Link        []string `json:"Link" yaml:"Link" validate:"unique,dive,oneof='H2 pipeline'"`
}

// Costs locates the technology cost table.
type Costs struct {
	Path string `json:"Path" yaml:"path" validate:"required"`
}

// Caverns locates the cavern potential table.
type Caverns struct {
	Path string `json:"Path" yaml:"path"`
}

// Plotting holds display names and colors for carriers.
type Plotting struct {
	NiceNames  map[string]string `json:"NiceNames" yaml:"nice_names"`
	TechColors map[string]string `json:"TechColors" yaml:"tech_colors"`
}

// Output configures optional side outputs of a run.
type Output struct {
	Metrics string  `json:"Metrics" yaml:"metrics"`
	Publish Publish `json:"Publish" yaml:"publish"`
}

// Publish configures the NATS summary publication. An empty server disables it.
type Publish struct {
	Server  string `json:"Server" yaml:"server" validate:"omitempty,url"`
	Subject string `json:"Subject" yaml:"subject"`
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data, format(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config data. Format is "json" or "yaml".
func Parse(data []byte, format string) (Config, error) {
	cfg := Config{}
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func (c *Config) applyDefaults() {
	if c.Electricity.MaxHours == nil {
		c.Electricity.MaxHours = make(map[string]float64)
	}
	if c.Output.Publish.Subject == "" {
		c.Output.Publish.Subject = DefaultSubject
	}
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	for _, carrier := range c.Electricity.ExtendableCarriers.StorageUnit {
		if _, ok := c.Electricity.MaxHours[carrier]; !ok {
			return fmt.Errorf("Electricity.MaxHours: no max hours for storage unit carrier %q", carrier)
		}
	}

	if c.Caverns.Path == "" && c.usesCaverns() {
		return errors.New("Caverns.Path: required when CAES is selected")
	}
	return nil
}

func (c Config) usesCaverns() bool {
	ext := c.Electricity.ExtendableCarriers
	return slices.Contains(ext.StorageUnit, technology.CompressedAir) ||
		slices.Contains(ext.Store, technology.CompressedAir)
}

// Wants reports whether carrier is selected for the component type
// ("StorageUnit", "Store" or "Link").
func (e ExtendableCarriers) Wants(component, carrier string) bool {
	switch component {
	case "StorageUnit":
		return slices.Contains(e.StorageUnit, carrier)
	case "Store":
		return slices.Contains(e.Store, carrier)
	case "Link":
		return slices.Contains(e.Link, carrier)
	}
	return false
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, e.Tag(), e.Param(), e.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", field, e.Tag(), e.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
