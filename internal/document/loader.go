package document

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped documents on the local file system.
type fileLoader struct {
	baseDir string
	logger  zerolog.Logger
}

// NewFileLoader creates a new file-based document loader. Names passed to
// Load resolve relative to baseDir; an empty baseDir leaves them untouched.
func NewFileLoader(baseDir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "document-loader").Logger(),
	}
}

// Load reads a gzipped document file and returns its line-joined text.
func (l *fileLoader) Load(ctx context.Context, name string) (string, error) {
	filePath := name
	if l.baseDir != "" {
		filePath = filepath.Join(l.baseDir, name)
	}
	l.logger.Info().Str("file", filePath).Msg("loading warranty document")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open document")
		return "", fmt.Errorf("failed to open document %s: %w", filePath, err)
	}
	defer file.Close()

	text, err := readLines(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read document")
		return "", fmt.Errorf("failed to read document %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("bytes", len(text)).
		Msg("warranty document loaded")

	return text, nil
}

// readLines decompresses r and joins the trimmed, non-empty lines.
func readLines(ctx context.Context, r io.Reader) (string, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var lines []string
	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading document: %w", err)
	}

	return strings.Join(lines, "\n"), nil
}
