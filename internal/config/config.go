package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Drive    DriveConfig    `mapstructure:"drive"`
	Report   ReportConfig   `mapstructure:"report"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SheetsConfig holds spreadsheet CSV export configuration
type SheetsConfig struct {
	ExportBaseURL string        `mapstructure:"export_base_url"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	DateLayouts   []string      `mapstructure:"date_layouts"`
}

// DriveConfig holds file-hosting download configuration
type DriveConfig struct {
	DownloadBaseURL string        `mapstructure:"download_base_url"`
	ImageTimeout    time.Duration `mapstructure:"image_timeout"`
}

// ReportConfig holds report generation configuration
type ReportConfig struct {
	TemplatePath   string        `mapstructure:"template_path"`
	ScratchDir     string        `mapstructure:"scratch_dir"`
	ArchiveDir     string        `mapstructure:"archive_dir"`
	ConverterBin   string        `mapstructure:"converter_bin"`
	ConvertTimeout time.Duration `mapstructure:"convert_timeout"`
	ImageWidthInch float64       `mapstructure:"image_width_inch"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// Exports hold the response open through per-row PDF conversion
	viper.SetDefault("server.write_timeout", 120*time.Second)

	// Sheets defaults
	viper.SetDefault("sheets.export_base_url", "https://docs.google.com/spreadsheets/d")
	viper.SetDefault("sheets.fetch_timeout", 30*time.Second)
	viper.SetDefault("sheets.date_layouts", []string{
		"2006-01-02",
		"02/01/2006",
		"2006/01/02",
		"2-Jan-2006",
		"January 2, 2006",
	})

	// Drive defaults
	viper.SetDefault("drive.download_base_url", "https://drive.google.com/uc")
	viper.SetDefault("drive.image_timeout", 15*time.Second)

	// Report defaults
	viper.SetDefault("report.template_path", "templates/report_template.docx")
	viper.SetDefault("report.scratch_dir", "")
	viper.SetDefault("report.archive_dir", "data/exports")
	viper.SetDefault("report.converter_bin", "soffice")
	viper.SetDefault("report.convert_timeout", 2*time.Minute)
	viper.SetDefault("report.image_width_inch", 2.5)

	// Database defaults
	viper.SetDefault("database.path", "data/night_checks.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("sheets.export_base_url", "SHEETS_EXPORT_BASE_URL")
	viper.BindEnv("drive.download_base_url", "DRIVE_DOWNLOAD_BASE_URL")
	viper.BindEnv("report.template_path", "REPORT_TEMPLATE_PATH")
	viper.BindEnv("report.converter_bin", "REPORT_CONVERTER_BIN")
	viper.BindEnv("database.path", "DATABASE_PATH")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sheets.ExportBaseURL == "" {
		return fmt.Errorf("sheets.export_base_url is required")
	}
	if c.Drive.DownloadBaseURL == "" {
		return fmt.Errorf("drive.download_base_url is required")
	}
	if c.Report.TemplatePath == "" {
		return fmt.Errorf("report.template_path is required")
	}
	if c.Report.ConverterBin == "" {
		return fmt.Errorf("report.converter_bin is required")
	}
	if len(c.Sheets.DateLayouts) == 0 {
		return fmt.Errorf("sheets.date_layouts must not be empty")
	}
	return nil
}
