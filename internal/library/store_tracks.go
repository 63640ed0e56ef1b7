package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const trackColumns = "id, path, title, artist, album, track_no, year, duration_sec, bit_depth, bitrate_kbps, sample_rate_hz"

// ReplaceTracks upserts scanned track metadata in a single transaction and
// rebuilds the full-text search index. Rescanning an unchanged path updates
// the existing row in place.
func (s *Store) ReplaceTracks(ctx context.Context, inputs []TrackInput) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin scan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO tracks (path, title, artist, album, track_no, year, duration_sec, bit_depth, bitrate_kbps, sample_rate_hz)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            title = excluded.title,
            artist = excluded.artist,
            album = excluded.album,
            track_no = excluded.track_no,
            year = excluded.year,
            duration_sec = excluded.duration_sec,
            bit_depth = excluded.bit_depth,
            bitrate_kbps = excluded.bitrate_kbps,
            sample_rate_hz = excluded.sample_rate_hz`)
	if err != nil {
		return 0, fmt.Errorf("prepare track insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, input := range inputs {
		if strings.TrimSpace(input.Path) == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			input.Path,
			input.Title,
			input.Artist,
			input.Album,
			input.TrackNo,
			input.Year,
			input.DurationSec,
			input.BitDepth,
			input.BitrateKbps,
			input.SampleRateHz,
		); err != nil {
			return 0, fmt.Errorf("insert track %q: %w", input.Path, err)
		}
		inserted++
	}

	if err := rebuildSearchIndexTx(ctx, tx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit scan: %w", err)
	}
	return inserted, nil
}

func rebuildSearchIndexTx(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks_fts`); err != nil {
		return fmt.Errorf("clear search index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO tracks_fts (id, title, artist, album)
        SELECT id, title, artist, album FROM tracks`); err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}
	return nil
}

// TrackByID fetches a track by identifier.
func (s *Store) TrackByID(ctx context.Context, id int64) (*Track, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id = ?`, id)
	track, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrTrackNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get track: %w", err)
	}
	return track, nil
}

// TrackCount returns the number of tracks in the library.
func (s *Store) TrackCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tracks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tracks: %w", err)
	}
	return count, nil
}

// ListArtists returns all distinct artists in sorted order.
func (s *Store) ListArtists(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT artist FROM tracks WHERE artist != '' ORDER BY artist`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	var artists []string
	for rows.Next() {
		var artist string
		if err := rows.Scan(&artist); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// ArtistTracks returns an artist's tracks ordered by year, album, then track number.
func (s *Store) ArtistTracks(ctx context.Context, artist string) ([]*Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE artist = ? ORDER BY year, album, track_no`,
		artist,
	)
	if err != nil {
		return nil, fmt.Errorf("query artist tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// AlbumTracks returns an album's tracks in track-number order.
func (s *Store) AlbumTracks(ctx context.Context, album string) ([]*Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE album = ? ORDER BY track_no`,
		album,
	)
	if err != nil {
		return nil, fmt.Errorf("query album tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// ListAlbums returns per-album summaries ordered by artist then album.
func (s *Store) ListAlbums(ctx context.Context) ([]AlbumSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT album, MIN(artist), COUNT(1), COALESCE(SUM(duration_sec), 0)
        FROM tracks
        WHERE album != ''
        GROUP BY album
        ORDER BY MIN(artist), album`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []AlbumSummary
	for rows.Next() {
		var summary AlbumSummary
		if err := rows.Scan(&summary.Album, &summary.Artist, &summary.TrackCount, &summary.DurationSec); err != nil {
			return nil, err
		}
		albums = append(albums, summary)
	}
	return albums, rows.Err()
}

// searchLimit caps full-text search results, matching the interactive use case.
const searchLimit = 50

// Search runs a full-text query over title, artist, and album tags.
// The term is quoted so punctuation in track titles doesn't break FTS syntax.
func (s *Store) Search(ctx context.Context, terms string) ([]*Track, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT t.id, t.path, t.title, t.artist, t.album, t.track_no, t.year, t.duration_sec, t.bit_depth, t.bitrate_kbps, t.sample_rate_hz
        FROM tracks AS t
        INNER JOIN tracks_fts AS f ON f.id = t.id
        WHERE tracks_fts MATCH '"' || ? || '"'
        LIMIT ?`,
		strings.ReplaceAll(terms, `"`, `""`),
		searchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", terms, err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

func collectTracks(rows *sql.Rows) ([]*Track, error) {
	var tracks []*Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

func scanTrack(scanner interface{ Scan(dest ...any) error }) (*Track, error) {
	var track Track
	if err := scanner.Scan(
		&track.ID,
		&track.Path,
		&track.Title,
		&track.Artist,
		&track.Album,
		&track.TrackNo,
		&track.Year,
		&track.DurationSec,
		&track.BitDepth,
		&track.BitrateKbps,
		&track.SampleRateHz,
	); err != nil {
		return nil, err
	}
	return &track, nil
}
