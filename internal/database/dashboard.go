package database

import (
	"context"
	"fmt"

	"imovelhub/server/internal/models"
)

// DashboardCounts holds the platform-wide totals shown to the super admin
type DashboardCounts struct {
	Agents       int64
	Developments int64
	TotalUnits   int64
	Units        map[models.UnitStatus]int64
}

func (d *Database) GetDashboardCounts(ctx context.Context) (*DashboardCounts, error) {
	db := d.withContext(ctx)
	counts := &DashboardCounts{Units: make(map[models.UnitStatus]int64)}

	if err := db.Model(&models.Agent{}).Count(&counts.Agents).Error; err != nil {
		return nil, fmt.Errorf("failed to count agents: %w", err)
	}
	if err := db.Model(&models.Development{}).Count(&counts.Developments).Error; err != nil {
		return nil, fmt.Errorf("failed to count developments: %w", err)
	}

	var total struct{ Sum int64 }
	if err := db.Model(&models.Development{}).Select("COALESCE(SUM(total_units), 0) AS sum").Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to sum total units: %w", err)
	}
	counts.TotalUnits = total.Sum

	byStatus, err := d.CountUnitsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	counts.Units = byStatus

	return counts, nil
}

// CountUnitsByStatus groups every unit record by status
func (d *Database) CountUnitsByStatus(ctx context.Context) (map[models.UnitStatus]int64, error) {
	var rows []struct {
		Status models.UnitStatus
		Count  int64
	}
	err := d.withContext(ctx).
		Model(&models.Unit{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count units: %w", err)
	}

	result := make(map[models.UnitStatus]int64, len(models.UnitStatuses))
	for _, s := range models.UnitStatuses {
		result[s] = 0
	}
	for _, row := range rows {
		result[row.Status] += row.Count
	}
	return result, nil
}
