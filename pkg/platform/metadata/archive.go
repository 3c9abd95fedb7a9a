package metadata

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap"
)

// Layouts live under unpackaged/layouts/ in the retrieve zip, named either
// Object-Layout Name.layout-meta.xml or Object-Layout Name.layout.
var layoutSuffixes = []string{".layout-meta.xml", ".layout"}

// extractLayouts unpacks the retrieve zip into a map keyed by layout name
// (last path segment with the recognized suffix stripped). Entries outside
// the layouts directory and entries with other suffixes are ignored. An
// entry whose bytes are not valid utf-8 is skipped with a warning, which
// downstream classification treats as not-found.
func extractLayouts(logger *zap.Logger, zipBytes []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("corrupt retrieve zip: %w", err))
	}

	result := map[string]string{}
	for _, entry := range zr.File {
		lower := strings.ToLower(entry.Name)
		if !strings.Contains(lower, "/layouts/") {
			continue
		}
		suffix := ""
		for _, s := range layoutSuffixes {
			if strings.HasSuffix(lower, s) {
				suffix = s
				break
			}
		}
		if suffix == "" {
			continue
		}

		segments := strings.Split(entry.Name, "/")
		base := segments[len(segments)-1]
		name := base[:len(base)-len(suffix)]

		data, err := readZipEntry(entry)
		if err != nil {
			return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("unreadable zip entry %s: %w", entry.Name, err))
		}
		if !utf8.Valid(data) {
			logger.Warn("skipping layout entry with invalid utf-8 content", zap.String("entry", entry.Name))
			continue
		}
		result[name] = string(data)
	}
	return result, nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()
	return io.ReadAll(rc)
}
