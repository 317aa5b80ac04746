package state

import (
	"database/sql"
	"errors"
)

// GetVolume returns the saved volume, or false when none was saved.
func (m *Manager) GetVolume() (uint16, bool, error) {
	var volume sql.NullInt64
	err := m.db.QueryRow(`SELECT volume FROM player_state WHERE id = 1`).Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !volume.Valid) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint16(volume.Int64), true, nil //nolint:gosec // stored from a uint16
}

// SaveVolume persists the volume.
func (m *Manager) SaveVolume(volume uint16) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET volume = excluded.volume
	`, volume)
	return err
}
