// Package detector handles ROM container format detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Format is the container format of a ROM file.
type Format string

// Supported container formats.
const (
	Raw      Format = "raw"
	Gzip     Format = "gzip"
	Zip      Format = "zip"
	SevenZip Format = "7z"
)

func (f Format) String() string {
	return string(f)
}

var (
	gzipMagic     = []byte{0x1F, 0x8B}
	zipMagic      = []byte{'P', 'K', 0x03, 0x04}
	sevenZipMagic = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
)

// Detector handles container format detection from file extensions and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the container format of a ROM file. The file extension
// is checked first, for unknown extensions the file header is inspected.
func (d *Detector) Detect(filename string, header []byte) Format {
	format, ok := detectFromFile(filename)
	if !ok {
		format = detectFromHeader(header)
		d.logger.Debug("Auto-detected format",
			log.Stringer("format", format),
			log.String("file", filename))
	}
	return format
}

// IsROMFile returns whether the file name has a known raw ROM extension.
func IsROMFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ch8", ".c8", ".rom", ".bin":
		return true
	default:
		return false
	}
}

// detectFromFile determines the format based on file extension.
func detectFromFile(filename string) (Format, bool) {
	if IsROMFile(filename) {
		return Raw, true
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		return Gzip, true
	case ".zip":
		return Zip, true
	case ".7z":
		return SevenZip, true
	default:
		return "", false
	}
}

// detectFromHeader determines the format based on the magic bytes of the file.
func detectFromHeader(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, zipMagic):
		return Zip
	case bytes.HasPrefix(header, sevenZipMagic):
		return SevenZip
	default:
		return Raw
	}
}
