package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ImageExtensions lists the file types FindImageFile will try, in order.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".tex"}

var errFound = errors.New("found")

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SearchDirs returns the directories an asset name is resolved against,
// starting from base (usually the config file's directory).
func SearchDirs(base string, extra ...string) []string {
	dirs := make([]string, 0, 6+len(extra))
	dirs = append(dirs, extra...)
	if base != "" {
		dirs = append(dirs,
			base,
			filepath.Join(base, "assets"),
			filepath.Join(base, "static", "images"),
		)
	}
	dirs = append(dirs, "assets", filepath.Join("static", "images"), ".")
	return dirs
}

// FindImageFile resolves an image name against dirs. A name with an
// extension is tried as-is first; otherwise every ImageExtensions entry is
// tried. As a last resort each dir is walked for a file with the same stem.
// It returns "" when nothing matches.
func FindImageFile(name string, dirs []string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) && fileExists(name) {
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(filepath.Base(name), ext)

	for _, dir := range dirs {
		if ext != "" {
			if p := filepath.Join(dir, name); fileExists(p) {
				return p
			}
		}
		for _, e := range ImageExtensions {
			p := filepath.Join(dir, strings.TrimSuffix(name, ext)+e)
			if fileExists(p) {
				return p
			}
		}
	}

	var foundPath string
	for _, dir := range dirs {
		if dir == "." {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := d.Name()
			e := strings.ToLower(filepath.Ext(base))
			if strings.TrimSuffix(base, filepath.Ext(base)) != stem {
				return nil
			}
			for _, known := range ImageExtensions {
				if e == known {
					foundPath = path
					return errFound
				}
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}
	return foundPath
}
