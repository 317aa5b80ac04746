package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/ripple/internal/db"
	"github.com/llehouerou/ripple/internal/playback"
)

// QueueState is the saved queue with its playback settings.
type QueueState struct {
	CurrentIndex   int
	ProgressMillis uint32
	Repeat         playback.RepeatMode
	Shuffle        bool
	Tracks         []playback.Track
}

func getQueue(db *sql.DB) (*QueueState, error) {
	state := &QueueState{CurrentIndex: -1}
	var progress int64
	err := db.QueryRow(`SELECT current_index, progress_ms, repeat_mode, shuffle FROM player_state WHERE id = 1`).
		Scan(&state.CurrentIndex, &progress, &state.Repeat, &state.Shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	state.ProgressMillis = uint32(max(progress, 0)) //nolint:gosec // stored from a uint32

	rows, err := db.Query(`
		SELECT track_id, title, artist, album, album_id, duration_ms, suffix, added_at
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t playback.Track
		var artist, album, albumID, suffix sql.NullString
		var durationMS int64
		var addedAt sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &artist, &album, &albumID, &durationMS, &suffix, &addedAt); err != nil {
			return nil, err
		}
		t.Artist = dbutil.NullStringValue(artist)
		t.Album = dbutil.NullStringValue(album)
		t.AlbumID = dbutil.NullStringValue(albumID)
		t.Suffix = dbutil.NullStringValue(suffix)
		t.Duration = time.Duration(durationMS) * time.Millisecond
		if addedAt.Valid {
			t.Added = time.Unix(addedAt.Int64, 0)
		}
		state.Tracks = append(state.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if state.CurrentIndex >= len(state.Tracks) {
		state.CurrentIndex = -1
	}
	return state, nil
}

func saveQueue(sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO player_state (id, current_index, progress_ms, repeat_mode, shuffle)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				progress_ms = excluded.progress_ms,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, state.CurrentIndex, state.ProgressMillis, state.Repeat, state.Shuffle)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, track_id, title, artist, album, album_id, duration_ms, suffix, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range state.Tracks {
			var added any
			if !t.Added.IsZero() {
				added = t.Added.Unix()
			}
			_, err = stmt.Exec(i, t.ID, t.Title, t.Artist, t.Album, t.AlbumID, t.Duration.Milliseconds(), t.Suffix, added)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
