package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreatePlaylist inserts a new empty playlist.
func (s *Store) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("playlist name required")
	}

	if existing, err := s.playlistByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrPlaylistExists, name)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.playlistByID(ctx, id)
}

// PlaylistByName fetches a playlist by name.
func (s *Store) PlaylistByName(ctx context.Context, name string) (*Playlist, error) {
	playlist, err := s.playlistByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	}
	return playlist, nil
}

// EnsurePlaylist fetches a playlist by name, creating it when missing.
func (s *Store) EnsurePlaylist(ctx context.Context, name string) (*Playlist, error) {
	playlist, err := s.playlistByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if playlist != nil {
		return playlist, nil
	}
	return s.CreatePlaylist(ctx, name)
}

// ListPlaylists returns playlist summaries ordered by name.
func (s *Store) ListPlaylists(ctx context.Context) ([]PlaylistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.id, p.name, p.created_at, p.updated_at,
               COUNT(pt.track_id), COALESCE(SUM(t.duration_sec), 0)
        FROM playlists AS p
        LEFT JOIN playlist_tracks AS pt ON pt.playlist_id = p.id
        LEFT JOIN tracks AS t ON t.id = pt.track_id
        GROUP BY p.id
        ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var summaries []PlaylistSummary
	for rows.Next() {
		var (
			summary    PlaylistSummary
			createdRaw string
			updatedRaw string
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &createdRaw, &updatedRaw, &summary.TrackCount, &summary.DurationSec); err != nil {
			return nil, err
		}
		summary.CreatedAt = parsePlaylistTime(createdRaw)
		summary.UpdatedAt = parsePlaylistTime(updatedRaw)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// PlaylistTracks returns a playlist's tracks in position order. A track that
// appears at multiple positions is returned once per position.
func (s *Store) PlaylistTracks(ctx context.Context, playlistID int64) ([]*Track, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT t.id, t.path, t.title, t.artist, t.album, t.track_no, t.year, t.duration_sec, t.bit_depth, t.bitrate_kbps, t.sample_rate_hz
        FROM playlist_tracks AS pt
        INNER JOIN tracks AS t ON t.id = pt.track_id
        WHERE pt.playlist_id = ?
        ORDER BY pt.position`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("query playlist tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// AppendPlaylistTrack appends a track to the end of a playlist. Capacity
// enforcement is the caller's responsibility; the store only orders positions.
func (s *Store) AppendPlaylistTrack(ctx context.Context, playlistID, trackID int64) error {
	if _, err := s.TrackByID(ctx, trackID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_tracks WHERE playlist_id = ?`,
		playlistID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO playlist_tracks (playlist_id, position, track_id) VALUES (?, ?, ?)`,
		playlistID, next, trackID,
	); err != nil {
		return fmt.Errorf("append track: %w", err)
	}

	if err := touchPlaylistTx(ctx, tx, playlistID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// RemovePlaylistTrack removes the entry at the given zero-based position and
// compacts the remaining positions. Returns false when the position is out of range.
func (s *Store) RemovePlaylistTrack(ctx context.Context, playlistID int64, position int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin remove tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?`,
		playlistID, position,
	)
	if err != nil {
		return false, fmt.Errorf("remove track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE playlist_tracks SET position = position - 1 WHERE playlist_id = ? AND position > ?`,
		playlistID, position,
	); err != nil {
		return false, fmt.Errorf("compact positions: %w", err)
	}

	if err := touchPlaylistTx(ctx, tx, playlistID); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit remove: %w", err)
	}
	return true, nil
}

// ClearPlaylist removes all tracks from a playlist.
func (s *Store) ClearPlaylist(ctx context.Context, playlistID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, playlistID); err != nil {
		return fmt.Errorf("clear playlist: %w", err)
	}
	if err := touchPlaylistTx(ctx, tx, playlistID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// RenamePlaylist changes a playlist's name. The new name must not collide
// with an existing playlist.
func (s *Store) RenamePlaylist(ctx context.Context, oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("playlist name required")
	}

	playlist, err := s.PlaylistByName(ctx, oldName)
	if err != nil {
		return err
	}
	if existing, err := s.playlistByName(ctx, newName); err != nil {
		return err
	} else if existing != nil && existing.ID != playlist.ID {
		return fmt.Errorf("%w: %q", ErrPlaylistExists, newName)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE playlists SET name = ?, updated_at = ? WHERE id = ?`,
		newName, time.Now().UTC().Format(time.RFC3339Nano), playlist.ID,
	); err != nil {
		return fmt.Errorf("rename playlist: %w", err)
	}
	return nil
}

// DeletePlaylist removes a playlist and its entries.
func (s *Store) DeletePlaylist(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) playlistByName(ctx context.Context, name string) (*Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM playlists WHERE name = ?`, name)
	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

func (s *Store) playlistByID(ctx context.Context, id int64) (*Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM playlists WHERE id = ?`, id)
	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

func touchPlaylistTx(ctx context.Context, tx *sql.Tx, playlistID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE playlists SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), playlistID,
	); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

func scanPlaylist(scanner interface{ Scan(dest ...any) error }) (*Playlist, error) {
	var (
		playlist   Playlist
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&playlist.ID, &playlist.Name, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	playlist.CreatedAt = parsePlaylistTime(createdRaw)
	playlist.UpdatedAt = parsePlaylistTime(updatedRaw)
	return &playlist, nil
}

func parsePlaylistTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}
