package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	resolver := New(Config{Root: "/books"})

	if resolver.GetRoot() != "/books" {
		t.Errorf("GetRoot() = %q, expected %q", resolver.GetRoot(), "/books")
	}
	expected := filepath.Join("/books", DefaultStoreName)
	if resolver.GetStorePath() != expected {
		t.Errorf("GetStorePath() = %q, expected %q", resolver.GetStorePath(), expected)
	}
	expected = filepath.Join("/books", DefaultChartName)
	if resolver.GetChartPath() != expected {
		t.Errorf("GetChartPath() = %q, expected %q", resolver.GetChartPath(), expected)
	}
}

func TestNew_EmptyRoot(t *testing.T) {
	resolver := New(Config{})

	if resolver.GetRoot() != "." {
		t.Errorf("GetRoot() = %q, expected %q", resolver.GetRoot(), ".")
	}
	expected := filepath.Join(".", DefaultStoreName)
	if resolver.GetStorePath() != expected {
		t.Errorf("GetStorePath() = %q, expected %q", resolver.GetStorePath(), expected)
	}
}

func TestNew_ExplicitPaths(t *testing.T) {
	resolver := New(Config{
		Root:      "/books",
		StorePath: "/elsewhere/company.oaif",
		ChartPath: "/elsewhere/coa.yaml",
	})

	if resolver.GetStorePath() != "/elsewhere/company.oaif" {
		t.Errorf("GetStorePath() = %q", resolver.GetStorePath())
	}
	if resolver.GetChartPath() != "/elsewhere/coa.yaml" {
		t.Errorf("GetChartPath() = %q", resolver.GetChartPath())
	}
}

func TestEnsureParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := New(Config{Root: tmpDir})

	target := filepath.Join(tmpDir, "nested", "deep", "books.oaif")
	if err := resolver.EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir() failed: %v", err)
	}

	if !resolver.IsDir(filepath.Join(tmpDir, "nested", "deep")) {
		t.Error("parent directory was not created")
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := New(Config{Root: tmpDir})

	path := filepath.Join(tmpDir, "books.oaif")
	if resolver.FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !resolver.FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
}
