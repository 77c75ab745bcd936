package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bulk-report-generator/backend/internal/models"
)

func TestMessage_Render(t *testing.T) {
	msg := Message{Title: "Template uploaded", Description: "{name}"}

	n := msg.Render("report.docx")
	if n.Title != "Template uploaded" {
		t.Errorf("unexpected title: %s", n.Title)
	}
	if n.Description != "report.docx" {
		t.Errorf("expected file name substitution, got %s", n.Description)
	}
	if n.Variant != models.VariantDefault {
		t.Errorf("expected default variant, got %s", n.Variant)
	}

	destructive := Message{Title: "Missing files", Description: "upload both files", Destructive: true}
	if got := destructive.Render(""); got.Variant != models.VariantDestructive {
		t.Errorf("expected destructive variant, got %s", got.Variant)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	if c.MissingFiles.Description != "Please upload both template and Excel files." {
		t.Errorf("unexpected missing-files description: %q", c.MissingFiles.Description)
	}
	if !c.MissingFiles.Destructive {
		t.Error("expected missing-files to be destructive")
	}
	if c.GenerationComplete.Destructive {
		t.Error("expected completion toast to be non-destructive")
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		c, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.MissingFiles.Title != "Missing files" {
			t.Errorf("expected default title, got %q", c.MissingFiles.Title)
		}
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		c, err := LoadCatalog("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.TemplateUploaded.Title == "" {
			t.Error("expected defaults to be populated")
		}
	})

	t.Run("overlay keeps unset entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.yaml")
		content := "generationComplete:\n  title: Done\n  description: All reports are ready.\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write catalog: %v", err)
		}

		c, err := LoadCatalog(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.GenerationComplete.Title != "Done" {
			t.Errorf("expected overridden title, got %q", c.GenerationComplete.Title)
		}
		if c.MissingFiles.Description != "Please upload both template and Excel files." {
			t.Errorf("expected default missing-files entry to survive, got %q", c.MissingFiles.Description)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.yaml")
		os.WriteFile(path, []byte("generationComplete: [not a map"), 0644)

		if _, err := LoadCatalog(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}
