// Package pathutil provides centralized path management for OAIF store files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStoreName is the store filename used when none is configured.
const DefaultStoreName = "books.oaif"

// DefaultChartName is the chart-of-accounts seed filename used when
// none is configured.
const DefaultChartName = "chart.yaml"

// PathResolver manages paths for the OAIF store file and its
// chart-of-accounts seed.
type PathResolver struct {
	root      string
	storePath string
	chartPath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// Root is the directory holding the books (e.g. ~/accounting)
	Root string
	// StorePath is the path to the OAIF store file
	StorePath string
	// ChartPath is the path to the chart-of-accounts YAML seed
	ChartPath string
}

// New creates a new PathResolver with the given configuration.
// If StorePath is empty, it defaults to {Root}/books.oaif.
// If ChartPath is empty, it defaults to {Root}/chart.yaml.
func New(config Config) *PathResolver {
	root := config.Root
	if root == "" {
		root = "."
	}

	storePath := config.StorePath
	if storePath == "" {
		storePath = filepath.Join(root, DefaultStoreName)
	}

	chartPath := config.ChartPath
	if chartPath == "" {
		chartPath = filepath.Join(root, DefaultChartName)
	}

	return &PathResolver{
		root:      root,
		storePath: storePath,
		chartPath: chartPath,
	}
}

// GetRoot returns the books root directory.
func (p *PathResolver) GetRoot() string {
	return p.root
}

// GetStorePath returns the OAIF store file path.
func (p *PathResolver) GetStorePath() string {
	return p.storePath
}

// GetChartPath returns the chart-of-accounts seed file path.
func (p *PathResolver) GetChartPath() string {
	return p.chartPath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return p.EnsureDir(dir)
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// IsDir checks if a path is a directory.
func (p *PathResolver) IsDir(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
