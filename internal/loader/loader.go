// Package loader handles ROM file loading operations.
package loader

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
	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrogolib/log"
)

var errNoFiles = errors.New("archive contains no files")

// ROM is a loaded program image.
type ROM struct {
	Name string // file name, or the archive entry name
	Data []byte
	Hash uint64 // XXH64 of Data
}

// HashString returns the hash as hex string.
func (r *ROM) HashString() string {
	return fmt.Sprintf("%016x", r.Hash)
}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger   *log.Logger
	detector *detector.Detector
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger:   logger,
		detector: detector.New(logger),
	}
}

// Load loads a ROM file and extracts it if it is stored in a gzip, zip or
// 7z container.
func (l *Loader) Load(path string) (*ROM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return l.LoadBuffer(filepath.Base(path), data)
}

// LoadBuffer loads a ROM from a buffer. The name is used to detect the
// container format.
func (l *Loader) LoadBuffer(name string, data []byte) (*ROM, error) {
	format := l.detector.Detect(name, data)

	var (
		rom []byte
		err error
	)
	entry := name

	switch format {
	case detector.Gzip:
		rom, entry, err = readGzip(name, data)
	case detector.Zip:
		rom, entry, err = readZip(data)
	case detector.SevenZip:
		rom, entry, err = readSevenZip(data)
	default:
		rom = data
	}
	if err != nil {
		return nil, fmt.Errorf("extracting %s archive %s: %w", format, name, err)
	}

	if len(rom) == 0 {
		return nil, fmt.Errorf("loading %s: %w", entry, chip8.ErrEmptyROM)
	}
	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("loading %s: %w: maximum is %d bytes", entry, chip8.ErrROMTooLarge, chip8.MaxROMSize)
	}

	r := &ROM{
		Name: entry,
		Data: rom,
		Hash: xxhash.Sum64(rom),
	}
	l.logger.Debug("ROM loaded",
		log.String("name", r.Name),
		log.String("format", format.String()),
		log.Int("size", len(rom)),
		log.String("xxh64", r.HashString()))
	return r, nil
}

func readGzip(name string, data []byte) ([]byte, string, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	rom, err := readLimited(reader)
	if err != nil {
		return nil, "", err
	}

	entry := reader.Name
	if entry == "" {
		entry = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return rom, entry, nil
}

func readZip(data []byte) ([]byte, string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("creating zip reader: %w", err)
	}
	return readArchiveFile(reader.File)
}

func readSevenZip(data []byte) ([]byte, string, error) {
	reader, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("creating 7z reader: %w", err)
	}
	return readArchiveFile(reader.File)
}

// archiveFile is a file entry of a zip or 7z archive.
type archiveFile interface {
	FileInfo() fs.FileInfo
	Open() (io.ReadCloser, error)
}

// readArchiveFile reads the first file with a ROM extension, or the first
// file if no entry has a ROM extension.
func readArchiveFile[F archiveFile](files []F) ([]byte, string, error) {
	var selected F
	found := false
	for _, file := range files {
		info := file.FileInfo()
		if info.IsDir() {
			continue
		}
		if !found {
			selected = file
			found = true
		}
		if detector.IsROMFile(info.Name()) {
			selected = file
			break
		}
	}
	if !found {
		return nil, "", errNoFiles
	}

	reader, err := selected.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening archive file: %w", err)
	}
	defer func() { _ = reader.Close() }()

	rom, err := readLimited(reader)
	if err != nil {
		return nil, "", err
	}
	return rom, selected.FileInfo().Name(), nil
}

// readLimited reads at most one byte more than fits into memory, which is
// enough to detect oversized programs without reading large files.
func readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}
