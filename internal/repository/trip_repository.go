package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, name, description, destination, start_date, end_date,
	owner_id, created_at, updated_at`

// GetTrips retrieves trips with filtering and pagination
func (r *TripRepository) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	query := "SELECT " + tripColumns + " FROM trips"

	var conditions []string
	var args []interface{}

	if filter.Destination != "" {
		conditions = append(conditions, "destination = ?")
		args = append(args, filter.Destination)
	}
	if filter.FromDate != "" {
		conditions = append(conditions, "end_date >= ?")
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		conditions = append(conditions, "start_date <= ?")
		args = append(args, filter.ToDate)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM trips"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY start_date DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Destination, &t.StartDate,
			&t.EndDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, total, nil
}

// GetTripByID retrieves a single trip by ID. Returns nil when not found.
func (r *TripRepository) GetTripByID(id int64) (*models.Trip, error) {
	query := "SELECT " + tripColumns + " FROM trips WHERE id = ?"

	var t models.Trip
	err := r.db.QueryRow(query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Destination, &t.StartDate,
		&t.EndDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return &t, nil
}

// CreateTrip inserts a new trip and returns its ID
func (r *TripRepository) CreateTrip(t *models.Trip) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO trips (name, description, destination, start_date, end_date, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name, t.Description, t.Destination, t.StartDate, t.EndDate, t.OwnerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create trip: %w", err)
	}
	return result.LastInsertId()
}

// UpdateTrip updates a trip's editable fields
func (r *TripRepository) UpdateTrip(t *models.Trip) error {
	_, err := r.db.Exec(`
		UPDATE trips
		SET name = ?, description = ?, destination = ?, start_date = ?,
		    end_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.Name, t.Description, t.Destination, t.StartDate, t.EndDate, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip and, via cascade, its activities and suggestions
func (r *TripRepository) DeleteTrip(id int64) error {
	if _, err := r.db.Exec("DELETE FROM trips WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}
