package promotion

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped campaign files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based campaign loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "campaign-loader").Logger(),
	}
}

// Load reads a gzipped campaign file and returns a CampaignSet. Each line
// is CODE:PCT; malformed lines are skipped with a warning.
func (l *fileLoader) Load(ctx context.Context, filePath string) (CampaignSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading campaign file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open campaign file")
		return nil, fmt.Errorf("failed to open campaign file %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := readCampaigns(ctx, file, filePath, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("campaign_count", set.Size()).
		Msg("campaign file loaded")

	return set, nil
}

// readCampaigns decompresses and parses CODE:PCT lines from r.
func readCampaigns(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (CampaignSet, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	set := NewMapCampaignSet(1024).(*mapCampaignSet)

	scanner := bufio.NewScanner(gzipReader)
	lineCount := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			logger.Warn().Str("source", source).Msg("campaign loading cancelled")
			return nil, ctx.Err()
		default:
		}

		lineCount++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, pct, ok := parseCampaignLine(line)
		if !ok {
			logger.Warn().
				Str("source", source).
				Int("line", lineCount).
				Str("content", line).
				Msg("skipping malformed campaign line")
			continue
		}
		set.Add(code, pct)
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Str("source", source).Msg("error reading campaign file")
		return nil, fmt.Errorf("error reading campaign file %s: %w", source, err)
	}

	return set, nil
}

// parseCampaignLine parses "CODE:PCT" where PCT is an integer in [0,100].
func parseCampaignLine(line string) (string, int, bool) {
	code, pctStr, found := strings.Cut(line, ":")
	if !found {
		return "", 0, false
	}
	code = strings.TrimSpace(code)
	pct, err := strconv.Atoi(strings.TrimSpace(pctStr))
	if code == "" || err != nil || pct < 0 || pct > 100 {
		return "", 0, false
	}
	return code, pct, true
}
