package notify

import (
	"fmt"
	"os"
	"strings"

	"github.com/bulk-report-generator/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Message is one catalog entry. The description may contain a "{name}"
// placeholder that is substituted with the file's display name.
type Message struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Destructive bool   `yaml:"destructive"`
}

// Render builds the toast notification for this message, substituting the
// {name} placeholder if present.
func (m Message) Render(name string) models.Notification {
	variant := models.VariantDefault
	if m.Destructive {
		variant = models.VariantDestructive
	}
	return models.Notification{
		Title:       m.Title,
		Description: strings.ReplaceAll(m.Description, "{name}", name),
		Variant:     variant,
	}
}

// Catalog holds the toast content for every user-visible event.
type Catalog struct {
	TemplateUploaded   Message `yaml:"templateUploaded"`
	DataUploaded       Message `yaml:"dataUploaded"`
	GenerationComplete Message `yaml:"generationComplete"`
	MissingFiles       Message `yaml:"missingFiles"`
}

// DefaultCatalog returns the built-in toast messages.
func DefaultCatalog() *Catalog {
	return &Catalog{
		TemplateUploaded: Message{
			Title:       "Template uploaded",
			Description: "{name}",
		},
		DataUploaded: Message{
			Title:       "Excel file uploaded",
			Description: "{name}",
		},
		GenerationComplete: Message{
			Title:       "Success!",
			Description: "Reports generated successfully!",
		},
		MissingFiles: Message{
			Title:       "Missing files",
			Description: "Please upload both template and Excel files.",
			Destructive: true,
		},
	}
}

// LoadCatalog loads a message catalog from a YAML file, falling back to the
// defaults for entries the file leaves empty. A missing file is not an error;
// the defaults are returned unchanged.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()

	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, fmt.Errorf("failed to read message catalog: %w", err)
	}

	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}

	mergeMessage(&catalog.TemplateUploaded, overlay.TemplateUploaded)
	mergeMessage(&catalog.DataUploaded, overlay.DataUploaded)
	mergeMessage(&catalog.GenerationComplete, overlay.GenerationComplete)
	mergeMessage(&catalog.MissingFiles, overlay.MissingFiles)

	return catalog, nil
}

// mergeMessage overlays non-empty fields onto the default entry.
func mergeMessage(dst *Message, src Message) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Destructive {
		dst.Destructive = true
	}
}
