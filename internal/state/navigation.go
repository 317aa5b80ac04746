package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/ripple/internal/db"
)

type NavigationState struct {
	Screen      string // "queue", "search" or "library"
	SearchQuery string
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	var state NavigationState
	var query sql.NullString
	err := db.QueryRow(`SELECT screen, search_query FROM navigation_state WHERE id = 1`).
		Scan(&state.Screen, &query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	state.SearchQuery = dbutil.NullStringValue(query)
	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, screen, search_query)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			screen = excluded.screen,
			search_query = excluded.search_query
	`, state.Screen, state.SearchQuery)
	return err
}
