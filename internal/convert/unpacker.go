package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"mouthfit/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Package is the table of contents of a .pkg archive. Entry offsets are
// relative to DataStart.
type Package struct {
	Version   string
	Entries   []FileEntry
	DataStart int64
}

// maxPkgString bounds name lengths so a corrupt header cannot force a huge
// allocation.
const maxPkgString = 4096

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("package string of %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkg parses the header of a package without extracting anything.
func ReadPkg(r io.ReadSeeker) (*Package, error) {
	version, err := readPkgString(r)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if !strings.HasPrefix(version, "PKGV") {
		return nil, fmt.Errorf("not a package: version %q", version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read file count: %w", err)
	}

	pkg := &Package{Version: version, Entries: make([]FileEntry, 0, min(count, 1024))}
	for i := uint32(0); i < count; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		var pos [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		pkg.Entries = append(pkg.Entries, FileEntry{Name: name, Offset: pos[0], Size: pos[1]})
	}

	pkg.DataStart, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// safeJoin rejects entry names that would escape dir.
func safeJoin(dir, name string) (string, error) {
	p := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes output directory", name)
	}
	return p, nil
}

// ExtractPkg unpacks every entry of the package at pkgPath into outputDir
// and returns the written paths.
func ExtractPkg(pkgPath, outputDir string) ([]string, error) {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pkg, err := ReadPkg(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: Package Version: %s, File Count: %d", pkg.Version, len(pkg.Entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(pkg.Entries))
	for i, entry := range pkg.Entries {
		if i%10 == 0 || i == len(pkg.Entries)-1 {
			utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(pkg.Entries), entry.Name)
		}
		dest, err := safeJoin(outputDir, entry.Name)
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return written, err
		}
		if _, err := f.Seek(pkg.DataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return written, err
		}

		out, err := os.Create(dest)
		if err != nil {
			return written, err
		}
		_, err = io.CopyN(out, f, int64(entry.Size))
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		written = append(written, dest)
	}

	utils.Debug("Unpacker: Extraction completed successfully")
	return written, nil
}

// PNGPath is where the converted copy of a .tex file lives: next to it, or
// in outDir when set.
func PNGPath(texPath, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath)) + ".png"
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(texPath), name)
}

// BulkConvertTextures decodes every .tex under root into a PNG and returns
// how many were converted. Textures with an up to date PNG are skipped.
func BulkConvertTextures(root, outDir string) (int, error) {
	utils.Info("Starting bulk texture conversion in parallel...")
	var converted int32
	var wg sync.WaitGroup

	// Limit concurrency to avoid RAM spikes
	const maxConcurrency = 10
	sem := make(chan struct{}, maxConcurrency)

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return 0, err
		}
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil
		}
		dest := PNGPath(path, outDir)
		if out, err := os.Stat(dest); err == nil && !out.ModTime().Before(info.ModTime()) {
			return nil
		}

		wg.Add(1)
		sem <- struct{}{} // Acquire slot
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release slot
			img, err := DecodeTexFile(path)
			if err == nil {
				err = SavePNG(dest, img)
			}
			if err != nil {
				utils.Error("Failed to convert %s: %v", path, err)
				return
			}
			atomic.AddInt32(&converted, 1)
		}()
		return nil
	})

	wg.Wait()
	utils.Info("Bulk conversion finished. Processed %d textures.", converted)
	return int(converted), err
}
