package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/models"
)

// FetchUnits returns the units of a development in creation order
func (d *Database) FetchUnits(ctx context.Context, developmentID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := d.withContext(ctx).
		Where("development_id = ?", developmentID).
		Order("id ASC").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	return units, nil
}

func (d *Database) GetUnit(ctx context.Context, developmentID, unitID uint) (*models.Unit, error) {
	var unit models.Unit
	err := d.withContext(ctx).
		Where("development_id = ?", developmentID).
		First(&unit, unitID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &unit, nil
}

// CreateUnit inserts a unit and refreshes the development's sales mirror
func (d *Database) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return d.withContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := InsertUnits(tx, unit.DevelopmentID, []*models.Unit{unit}); err != nil {
			return err
		}
		_, err := RefreshSalesStatusTx(tx, unit.DevelopmentID)
		return err
	})
}

// UpdateUnitStatus sets a unit's status and returns the unit together with
// its previous status. Any status may move to any other status.
func (d *Database) UpdateUnitStatus(ctx context.Context, developmentID, unitID uint, status models.UnitStatus) (*models.Unit, models.UnitStatus, error) {
	var unit models.Unit
	var previous models.UnitStatus

	err := d.withContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("development_id = ?", developmentID).First(&unit, unitID).Error
		if err != nil {
			return notFound(err)
		}
		previous = unit.Status

		if err := tx.Model(&unit).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update unit status: %w", err)
		}
		_, err = RefreshSalesStatusTx(tx, developmentID)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return &unit, previous, nil
}

// InsertUnits inserts a batch of units of one development inside tx
func InsertUnits(tx *gorm.DB, developmentID uint, units []*models.Unit) error {
	if len(units) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Development{}).Where("id = ?", developmentID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check development: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	for _, unit := range units {
		unit.ID = 0
		unit.DevelopmentID = developmentID
		if unit.Status == "" {
			unit.Status = models.UnitAvailable
		}
	}

	if err := tx.Create(units).Error; err != nil {
		return fmt.Errorf("failed to insert units: %w", err)
	}
	return nil
}

// RefreshSalesStatus recomputes the cached sales mirror of a development
func (d *Database) RefreshSalesStatus(ctx context.Context, developmentID uint) (models.SalesStatus, error) {
	return RefreshSalesStatusTx(d.withContext(ctx), developmentID)
}

// RefreshSalesStatusTx recomputes the sales mirror from the unit records
// using the given connection or transaction
func RefreshSalesStatusTx(tx *gorm.DB, developmentID uint) (models.SalesStatus, error) {
	var units []models.Unit
	if err := tx.Select("id", "status").Where("development_id = ?", developmentID).Find(&units).Error; err != nil {
		return models.SalesStatus{}, fmt.Errorf("failed to load units: %w", err)
	}

	status := inventory.ComputeSalesStats(units).SalesStatus()
	result := tx.Model(&models.Development{}).
		Where("id = ?", developmentID).
		Updates(map[string]interface{}{
			"sales_available": status.Available,
			"sales_reserved":  status.Reserved,
			"sales_sold":      status.Sold,
		})
	if result.Error != nil {
		return models.SalesStatus{}, fmt.Errorf("failed to update sales status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.SalesStatus{}, ErrNotFound
	}
	return status, nil
}

// RefreshAllSalesStatus recomputes the mirror of every development and
// returns how many were updated
func (d *Database) RefreshAllSalesStatus(ctx context.Context) (int, error) {
	var ids []uint
	if err := d.withContext(ctx).Model(&models.Development{}).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to list developments: %w", err)
	}

	refreshed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		if _, err := d.RefreshSalesStatus(ctx, id); err != nil {
			return refreshed, fmt.Errorf("development %d: %w", id, err)
		}
		refreshed++
	}
	return refreshed, nil
}
