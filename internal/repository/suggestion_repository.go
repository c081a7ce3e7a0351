package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// SuggestionRepository handles database operations for suggestions
type SuggestionRepository struct {
	db *sql.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *sql.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

const suggestionColumns = `id, trip_id, category, title, description, location,
	latitude, longitude, start_time, end_time, order_index, metadata_json,
	status, up_votes, down_votes, suggested_by, created_at, updated_at`

// GetSuggestions retrieves a trip's suggestions with optional filtering
func (r *SuggestionRepository) GetSuggestions(tripID int64, filter models.SuggestionFilter) ([]models.Suggestion, error) {
	query := "SELECT " + suggestionColumns + " FROM suggestions"

	conditions := []string{"trip_id = ?"}
	args := []interface{}{tripID}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *s)
	}

	return suggestions, nil
}

// GetSuggestionByID retrieves a single suggestion. Returns nil when not
// found.
func (r *SuggestionRepository) GetSuggestionByID(id int64) (*models.Suggestion, error) {
	row := r.db.QueryRow("SELECT "+suggestionColumns+" FROM suggestions WHERE id = ?", id)
	s, err := scanSuggestion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSuggestion inserts a new pending suggestion and returns its ID
func (r *SuggestionRepository) CreateSuggestion(s *models.Suggestion) (int64, error) {
	meta, err := marshalMetadata(s.Metadata)
	if err != nil {
		return 0, err
	}
	if s.Status == "" {
		s.Status = models.SuggestionPending
	}

	result, err := r.db.Exec(`
		INSERT INTO suggestions (trip_id, category, title, description, location,
			latitude, longitude, start_time, end_time, order_index, metadata_json,
			status, suggested_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.TripID, s.Category, s.Title, s.Description, s.Location,
		s.Latitude, s.Longitude, s.StartTime, s.EndTime, s.OrderIndex, meta,
		s.Status, s.SuggestedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return result.LastInsertId()
}

// Vote records an up or down vote on a suggestion
func (r *SuggestionRepository) Vote(id int64, up bool) error {
	column := "down_votes"
	if up {
		column = "up_votes"
	}
	query := fmt.Sprintf(`
		UPDATE suggestions
		SET %s = %s + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, column, column)

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to vote on suggestion: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("suggestion %d not found", id)
	}
	return nil
}

// SetStatus moves a suggestion between pending, accepted and rejected.
// Non-pending suggestions drop out of the timeline on the next rebuild.
func (r *SuggestionRepository) SetStatus(id int64, status string) error {
	switch status {
	case models.SuggestionPending, models.SuggestionAccepted, models.SuggestionRejected:
	default:
		return fmt.Errorf("invalid suggestion status %q", status)
	}

	result, err := r.db.Exec(`
		UPDATE suggestions
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("suggestion %d not found", id)
	}
	return nil
}

// DeleteSuggestion removes a suggestion
func (r *SuggestionRepository) DeleteSuggestion(id int64) error {
	result, err := r.db.Exec("DELETE FROM suggestions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("suggestion %d not found", id)
	}
	return nil
}

func scanSuggestion(row rowScanner) (*models.Suggestion, error) {
	var s models.Suggestion
	var orderIndex sql.NullInt64
	var meta string

	err := row.Scan(
		&s.ID, &s.TripID, &s.Category, &s.Title, &s.Description, &s.Location,
		&s.Latitude, &s.Longitude, &s.StartTime, &s.EndTime, &orderIndex,
		&meta, &s.Status, &s.UpVotes, &s.DownVotes, &s.SuggestedBy,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan suggestion: %w", err)
	}

	if orderIndex.Valid {
		idx := int(orderIndex.Int64)
		s.OrderIndex = &idx
	}
	s.Metadata = unmarshalMetadata(meta)

	return &s, nil
}
