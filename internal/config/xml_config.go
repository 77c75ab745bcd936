// Package config provides XML-based configuration management for air-gapped deployment.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"BulkReportGenerator"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Generation configuration
	Generation GenerationConfig `xml:"Generation"`

	// Upload configuration
	Uploads UploadConfig `xml:"Uploads"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// GenerationConfig contains report generation settings
type GenerationConfig struct {
	DelaySeconds            int `xml:"DelaySeconds"`
	WorkspaceTimeoutMinutes int `xml:"WorkspaceTimeoutMinutes"`
	CleanupIntervalMinutes  int `xml:"CleanupIntervalMinutes"`
}

// UploadConfig contains advisory accept filters for the two file slots.
// These mirror the accept attribute on the file pickers; drops are never
// filtered and nothing is enforced server-side.
type UploadConfig struct {
	TemplateAcceptFilter string `xml:"TemplateAcceptFilter"`
	DataAcceptFilter     string `xml:"DataAcceptFilter"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel                string `xml:"LogLevel"`
	EnableRequestLogging    bool   `xml:"EnableRequestLogging"`
	MessageCatalogPath      string `xml:"MessageCatalogPath"`
	WebSocketMaxMessageSize int    `xml:"WebSocketMaxMessageSizeKB"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "64M",
		},
		Generation: GenerationConfig{
			DelaySeconds:            3,
			WorkspaceTimeoutMinutes: 30,
			CleanupIntervalMinutes:  5,
		},
		Uploads: UploadConfig{
			TemplateAcceptFilter: ".docx",
			DataAcceptFilter:     ".xlsx,.xls",
		},
		Advanced: AdvancedConfig{
			LogLevel:                "info",
			EnableRequestLogging:    true,
			MessageCatalogPath:      "",
			WebSocketMaxMessageSize: 64,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &AppConfig{}
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Bulk Report Generator Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	// PORT override
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// GENERATION_DELAY_SECONDS override (mainly for demos)
	if delay := os.Getenv("GENERATION_DELAY_SECONDS"); delay != "" {
		if d, err := strconv.Atoi(delay); err == nil && d >= 0 {
			c.Generation.DelaySeconds = d
		}
	}

	// MESSAGE_CATALOG override
	if catalog := os.Getenv("MESSAGE_CATALOG"); catalog != "" {
		c.Advanced.MessageCatalogPath = catalog
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if c.Advanced.MessageCatalogPath != "" && !filepath.IsAbs(c.Advanced.MessageCatalogPath) {
		c.Advanced.MessageCatalogPath = filepath.Join(configDir, c.Advanced.MessageCatalogPath)
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// GetGenerationDelay returns the simulated generation delay as a duration
func (c *AppConfig) GetGenerationDelay() time.Duration {
	return time.Duration(c.Generation.DelaySeconds) * time.Second
}
