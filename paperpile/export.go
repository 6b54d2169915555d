package paperpile

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoExport is returned when a directory contains no Paperpile export
// files.
var ErrNoExport = errors.New("paperpile: no export files found")

// exportGlob matches the file names Paperpile gives its BibTeX exports.
const exportGlob = "Paperpile - * BibTeX Export*.bib"

// FindExports returns all Paperpile export files in a directory, matched by
// file name.
func FindExports(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, exportGlob))
}

// FindLatestExport returns the most recently modified Paperpile export file
// in a directory. Returns ErrNoExport if there are none.
func FindLatestExport(dir string) (string, error) {
	files, err := FindExports(dir)
	if err != nil {
		return "", err
	}

	var latest string
	var latestMod int64
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = file
			latestMod = mod
		}
	}
	if latest == "" {
		return "", ErrNoExport
	}
	return latest, nil
}
