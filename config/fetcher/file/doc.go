// Package file provides a file-based DataFetcher implementation for the config package.
//
// The file is read at construction time and cached, so every Fetch returns
// the same bytes. The file path becomes the origin of every parsed value,
// which makes error messages point at "app.yaml: 12".
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	cfg, err := fetcher.Load(yaml.NewParser(), nil)
//
// Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors.
package file
