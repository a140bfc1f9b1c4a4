package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/K0NGR3SS/colrisk/internal/catalog"
	"github.com/K0NGR3SS/colrisk/internal/models"
	"github.com/K0NGR3SS/colrisk/internal/report"
	"github.com/K0NGR3SS/colrisk/internal/scanner"
)

const (
	DefaultPath  = "colrisk.yaml"
	DefaultInput = "gender-classifier-DFE-791531.csv"

	EnvSlackWebhook = "COLRISK_SLACK_WEBHOOK"
	EnvAWSRegion    = "COLRISK_AWS_REGION"
)

type Config struct {
	Input        string             `yaml:"input"`
	OutputDir    string             `yaml:"output_dir"`
	CSVReport    string             `yaml:"csv_report"`
	PDFReport    string             `yaml:"pdf_report"`
	SampleSize   int                `yaml:"sample_size"`
	OutputFormat string             `yaml:"output_format"`
	MinRisk      string             `yaml:"min_risk"`
	Delimiter    string             `yaml:"delimiter"`
	Encoding     string             `yaml:"encoding"`
	Thresholds   scanner.Thresholds `yaml:"thresholds"`
	CustomRules  []CustomRule       `yaml:"custom_rules"`
	Slack        SlackConfig        `yaml:"slack"`
	AWS          AWSConfig          `yaml:"aws"`
}

type CustomRule struct {
	Category        string   `yaml:"category"`
	Keywords        []string `yaml:"keywords"`
	Risk            string   `yaml:"risk"`
	InformationType string   `yaml:"information_type"`
	Concerns        []string `yaml:"concerns"`
	Recommendations []string `yaml:"recommendations"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

type AWSConfig struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

func Default() *Config {
	return &Config{
		Input:        DefaultInput,
		OutputDir:    ".",
		CSVReport:    report.DefaultCSVName,
		PDFReport:    report.DefaultPDFName,
		SampleSize:   scanner.DefaultSampleSize,
		OutputFormat: "table",
		MinRisk:      string(models.RiskLow),
		Thresholds:   scanner.DefaultThresholds(),
		AWS:          AWSConfig{Region: "us-east-1"},
	}
}

// LoadConfig overlays the YAML file at path on the defaults. A missing file
// is only an error when required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv lets the environment override secrets and the region.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSlackWebhook); v != "" {
		c.Slack.WebhookURL = v
	}
	if v := os.Getenv(EnvAWSRegion); v != "" {
		c.AWS.Region = v
	}
}

func (c *Config) Validate() error {
	if c.OutputFormat != "" && c.OutputFormat != "table" && c.OutputFormat != "json" {
		return fmt.Errorf("invalid output_format: %s", c.OutputFormat)
	}

	if c.MinRisk != "" {
		if _, err := models.ParseRiskLevel(c.MinRisk); err != nil {
			return fmt.Errorf("invalid min_risk: %s", c.MinRisk)
		}
	}

	if c.SampleSize <= 0 {
		return fmt.Errorf("invalid sample_size: %d", c.SampleSize)
	}

	if utf8.RuneCountInString(c.Delimiter) > 1 && c.Delimiter != `\t` {
		return fmt.Errorf("invalid delimiter: %q", c.Delimiter)
	}

	th := c.Thresholds
	if th.FreeTextMinLength < 0 || th.CoordinateMinDecimals < 0 || th.AxisMinDecimals < 0 || th.MaxLatitude <= 0 || th.MaxLongitude <= 0 {
		return fmt.Errorf("invalid thresholds: %+v", th)
	}

	for i, r := range c.CustomRules {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("custom_rules[%d]: category is required", i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("custom_rules[%d]: at least one keyword is required", i)
		}
		if _, err := models.ParseRiskLevel(r.Risk); err != nil {
			return fmt.Errorf("custom_rules[%d]: %w", i, err)
		}
	}

	return nil
}

func (c *Config) MinRiskLevel() models.RiskLevel {
	level, err := models.ParseRiskLevel(c.MinRisk)
	if err != nil {
		return models.RiskLow
	}
	return level
}

// DelimiterRune returns 0 when the delimiter should be sniffed.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// Catalog is the built-in catalog followed by any custom rules.
func (c *Config) Catalog() catalog.Catalog {
	cat := catalog.Default()
	if len(c.CustomRules) == 0 {
		return cat
	}

	rules := make([]catalog.PatternRule, 0, len(c.CustomRules))
	for _, r := range c.CustomRules {
		risk, err := models.ParseRiskLevel(r.Risk)
		if err != nil {
			risk = models.RiskLow
		}
		info := r.InformationType
		if info == "" {
			info = r.Category
		}
		rules = append(rules, catalog.PatternRule{
			Category:        models.Category(r.Category),
			Keywords:        r.Keywords,
			BaseRisk:        risk,
			InformationType: info,
			Concerns:        r.Concerns,
			Recommendations: r.Recommendations,
		})
	}
	return cat.WithCustomRules(rules...)
}
