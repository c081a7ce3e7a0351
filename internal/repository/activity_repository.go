package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skullgoth/opentripboard-sub000/internal/database"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, trip_id, category, title, description, location,
	latitude, longitude, start_time, end_time, order_index, metadata_json,
	created_at, updated_at`

// fieldColumns maps engine field names to their activity columns. Anything
// not listed here lives inside the metadata JSON.
var fieldColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"category":    "category",
	"location":    "location",
	"latitude":    "latitude",
	"longitude":   "longitude",
	"startTime":   "start_time",
	"endTime":     "end_time",
	"orderIndex":  "order_index",
}

// GetActivities retrieves a trip's activities with optional filtering
func (r *ActivityRepository) GetActivities(tripID int64, filter models.ActivityFilter) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities"

	conditions := []string{"trip_id = ?"}
	args := []interface{}{tripID}

	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, filter.EndTime)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY start_time, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}

	return activities, nil
}

// GetActivityByID retrieves a single activity. Returns nil when not found.
func (r *ActivityRepository) GetActivityByID(id int64) (*models.Activity, error) {
	row := r.db.QueryRow("SELECT "+activityColumns+" FROM activities WHERE id = ?", id)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateActivity inserts a new activity and returns its ID
func (r *ActivityRepository) CreateActivity(a *models.Activity) (int64, error) {
	meta, err := marshalMetadata(a.Metadata)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Exec(`
		INSERT INTO activities (trip_id, category, title, description, location,
			latitude, longitude, start_time, end_time, order_index, metadata_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.TripID, a.Category, a.Title, a.Description, a.Location,
		a.Latitude, a.Longitude, a.StartTime, a.EndTime, a.OrderIndex, meta,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create activity: %w", err)
	}
	return result.LastInsertId()
}

// SaveField persists a single field change. Known fields write their
// column; everything else merges into the metadata JSON. This is the
// persistence collaborator behind both edit transactions and transport
// segment write-back (the silent flag only matters to notification layers
// above).
func (r *ActivityRepository) SaveField(ctx context.Context, itemID int64, field string, value any, silent bool) error {
	if col, ok := fieldColumns[field]; ok {
		query := fmt.Sprintf(
			"UPDATE activities SET %s = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", col)
		result, err := r.db.ExecContext(ctx, query, value, itemID)
		if err != nil {
			return fmt.Errorf("failed to save field %s: %w", field, err)
		}
		return requireRow(result, itemID)
	}

	return r.saveMetadataField(ctx, itemID, field, value)
}

// saveMetadataField merges one key into the activity's metadata JSON
func (r *ActivityRepository) saveMetadataField(ctx context.Context, itemID int64, field string, value any) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		var raw string
		err := tx.QueryRowContext(ctx,
			"SELECT metadata_json FROM activities WHERE id = ?", itemID).Scan(&raw)
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity %d not found", itemID)
		}
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}

		meta := make(map[string]any)
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &meta); err != nil {
				// Corrupt blob, start over rather than fail the save
				meta = make(map[string]any)
			}
		}
		if value == nil {
			delete(meta, field)
		} else {
			meta[field] = value
		}

		buf, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE activities SET metadata_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			string(buf), itemID); err != nil {
			return fmt.Errorf("failed to save metadata field %s: %w", field, err)
		}
		return nil
	})
}

// DeleteActivity removes an activity
func (r *ActivityRepository) DeleteActivity(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return fmt.Errorf("activity %d not found", id)
	}
	return nil
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var a models.Activity
	var orderIndex sql.NullInt64
	var meta string

	err := row.Scan(
		&a.ID, &a.TripID, &a.Category, &a.Title, &a.Description, &a.Location,
		&a.Latitude, &a.Longitude, &a.StartTime, &a.EndTime, &orderIndex,
		&meta, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}

	if orderIndex.Valid {
		idx := int(orderIndex.Int64)
		a.OrderIndex = &idx
	}
	a.Metadata = unmarshalMetadata(meta)

	return &a, nil
}

func marshalMetadata(meta map[string]any) (string, error) {
	if meta == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(buf), nil
}

func unmarshalMetadata(raw string) map[string]any {
	if raw == "" || raw == "{}" {
		return nil
	}
	meta := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil
	}
	return meta
}
