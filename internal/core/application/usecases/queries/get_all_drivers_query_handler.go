package queries

import (
	"context"
	"database/sql"
	"time"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler reads the drivers table with plain SQL.
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetAllDriversQueryResponse, 0)

	sqlText := `
		SELECT
			id,
			first_name,
			last_name,
			license,
			email,
			phone,
			date_of_birth,
			status,
			vehicle_id
		FROM drivers`
	var args []any
	if query.Status() != nil {
		sqlText += ` WHERE status = ?`
		args = append(args, int(*query.Status()))
	}
	sqlText += ` ORDER BY last_name, first_name`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d GetAllDriversQueryResponse
		var id uuid.UUID
		var vehicleID uuid.NullUUID
		var phone sql.NullString
		var dateOfBirth sql.NullTime
		var status int

		err = rows.Scan(
			&id,
			&d.FirstName,
			&d.LastName,
			&d.License,
			&d.Email,
			&phone,
			&dateOfBirth,
			&status,
			&vehicleID,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		d.ID = driverID
		d.Status = driver.Status(status)

		if phone.Valid {
			d.Phone = &phone.String
		}
		if dateOfBirth.Valid {
			dob := dateOfBirth.Time.UTC().Truncate(24 * time.Hour)
			d.DateOfBirth = &dob
		}
		if vehicleID.Valid {
			vid, vidErr := kernel.UUIDFromBytes(vehicleID.UUID[:])
			if vidErr != nil {
				return nil, vidErr
			}
			d.VehicleID = &vid
		}

		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
