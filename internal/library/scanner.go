package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"platter/internal/config"
	"platter/internal/logging"
	"platter/internal/media/ffprobe"
	"platter/internal/textutil"
)

// ScanError records a file the scanner could not read or probe.
type ScanError struct {
	Path string
	Err  error
}

// ScanResult summarizes a library scan.
type ScanResult struct {
	Scanned int
	Stored  int
	Errors  []ScanError
}

// Scanner walks the music directory and extracts track metadata via ffprobe.
type Scanner struct {
	cfg    *config.Config
	store  *Store
	logger *slog.Logger
}

// NewScanner creates a library scanner.
func NewScanner(cfg *config.Config, store *Store, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		cfg:    cfg,
		store:  store,
		logger: logger.With(logging.String(logging.FieldComponent, "scanner")),
	}
}

// Scan walks the configured music directory, probes every file with a known
// audio extension, and upserts the results into the library. Files that fail
// to probe are reported in the result rather than aborting the scan.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	root := s.cfg.Library.MusicDir
	allowed := make(map[string]struct{}, len(s.cfg.Library.Extensions))
	for _, ext := range s.cfg.Library.Extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	result := &ScanResult{}
	var inputs []TrackInput

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			result.Errors = append(result.Errors, ScanError{Path: path, Err: walkErr})
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := allowed[ext]; !ok {
			return nil
		}

		result.Scanned++
		input, probeErr := s.probeFile(ctx, path)
		if probeErr != nil {
			s.logger.Warn("skipping unreadable file",
				logging.String("path", path),
				logging.Error(probeErr))
			result.Errors = append(result.Errors, ScanError{Path: path, Err: probeErr})
			return nil
		}
		inputs = append(inputs, input)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk music dir %s: %w", root, err)
	}

	stored, err := s.store.ReplaceTracks(ctx, inputs)
	if err != nil {
		return nil, err
	}
	result.Stored = stored

	s.logger.Info("library scan complete",
		logging.Int("scanned", result.Scanned),
		logging.Int("stored", result.Stored),
		logging.Int("errors", len(result.Errors)))
	return result, nil
}

func (s *Scanner) probeFile(ctx context.Context, path string) (TrackInput, error) {
	probe, err := ffprobe.Inspect(ctx, s.cfg.FFprobeBinary(), path)
	if err != nil {
		return TrackInput{}, err
	}
	if _, ok := probe.FirstAudioStream(); !ok {
		return TrackInput{}, fmt.Errorf("no audio stream in %s", path)
	}

	duration := int64(probe.DurationSeconds() + 0.5)
	if duration <= 0 {
		return TrackInput{}, fmt.Errorf("no duration reported for %s", path)
	}

	title, ok := probe.Tag("title")
	if !ok {
		title = textutil.TitleFromFilename(path)
	}
	artist, _ := probe.Tag("artist")
	album, _ := probe.Tag("album")

	input := TrackInput{
		Path:         path,
		Title:        textutil.CleanTag(title),
		Artist:       textutil.CleanTag(artist),
		Album:        textutil.CleanTag(album),
		DurationSec:  duration,
		BitDepth:     int64(probe.BitDepth()),
		BitrateKbps:  probe.BitRate() / 1000,
		SampleRateHz: int64(probe.SampleRate()),
	}
	if trackTag, ok := probe.Tag("track"); ok {
		input.TrackNo = parseTrackNumber(trackTag)
	}
	if dateTag, ok := firstTag(probe, "date", "year"); ok {
		input.Year = parseYear(dateTag)
	}
	return input, nil
}

func firstTag(probe ffprobe.Result, names ...string) (string, bool) {
	for _, name := range names {
		if value, ok := probe.Tag(name); ok {
			return value, true
		}
	}
	return "", false
}

// parseTrackNumber handles both plain numbers and "7/12" style tags.
func parseTrackNumber(value string) int64 {
	if idx := strings.IndexByte(value, '/'); idx >= 0 {
		value = value[:idx]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseYear extracts the year from a date tag such as "2008" or "2008-05-01".
func parseYear(value string) int64 {
	value = strings.TrimSpace(value)
	if len(value) > 4 {
		value = value[:4]
	}
	year, err := strconv.ParseInt(value, 10, 64)
	if err != nil || year < 0 {
		return 0
	}
	return year
}
