package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no regular files.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first regular file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		decoder, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		defer decoder.Close()
		return io.ReadAll(decoder)
	case ".zip", ".7z":
		files, err := readArchive(filename, data)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%s: %w", filename, ErrEmptyArchive)
		}
		return files[0].data, nil
	default:
		// return the data as is
		return data, nil
	}
}

// LoadArchive loads every regular file of a .zip or .7z archive, or of a
// directory, keyed by base name. Machines that are built from several ROM
// chips use it to find their parts.
func LoadArchive(path string) (map[string][]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte)
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			data, err := LoadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			out[entry.Name()] = data
		}
		return out, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	files, err := readArchive(path, data)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		out[f.name] = f.data
	}
	return out, nil
}

type archiveFile struct {
	name string
	data []byte
}

// archiveEntry is the part of zip.File and sevenzip.File readArchive needs.
type archiveEntry interface {
	Open() (io.ReadCloser, error)
	FileInfo() fs.FileInfo
}

// readArchive decompresses every regular file of a zip or 7z archive held
// in data, in archive order.
func readArchive(filename string, data []byte) ([]archiveFile, error) {
	var entries []archiveEntry
	var names []string

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		for _, f := range r.File {
			entries = append(entries, f)
			names = append(names, f.Name)
		}
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		for _, f := range r.File {
			entries = append(entries, f)
			names = append(names, f.Name)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported archive type %q", filename, ext)
	}

	var files []archiveFile
	for i, entry := range entries {
		if !entry.FileInfo().Mode().IsRegular() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, names[i], err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, names[i], err)
		}
		files = append(files, archiveFile{name: filepath.Base(names[i]), data: b})
	}
	return files, nil
}
