package statistics

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/internal/pkg/cache"
	"github.com/sunfield-crm/sunfield/internal/pkg/database"
	"github.com/sunfield-crm/sunfield/internal/pkg/pipeline"
)

const (
	CacheKeyStageCount = "statistics:pipeline:stage:%s" // Format with stage name
	CacheKeyOpenDeals  = "statistics:pipeline:open"
	CacheKeyApptsToday = "statistics:appointments:today"
	CacheExpiration    = 30 * time.Minute
)

// PipelineStats holds the rollups for the dashboard.
type PipelineStats struct {
	StageCounts       map[string]int64 `json:"stage_counts"`
	OpenDeals         int64            `json:"open_deals"`
	AppointmentsToday int64            `json:"appointments_today"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache is due for a refresh.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached rollups when the interval elapsed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes the pipeline rollups and writes them to
// the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	type row struct {
		Stage string
		Count int64
	}
	var rows []row
	if err := db.Model(&models.Deal{}).
		Select("stage, count(*) as count").
		Group("stage").
		Scan(&rows).Error; err != nil {
		return err
	}

	var open int64
	for _, r := range rows {
		if err := cache.Set(fmt.Sprintf(CacheKeyStageCount, r.Stage), r.Count, CacheExpiration); err != nil {
			return err
		}
		if !pipeline.IsTerminalState(r.Stage, pipeline.DealStageTable) {
			open += r.Count
		}
	}
	if err := cache.Set(CacheKeyOpenDeals, open, CacheExpiration); err != nil {
		return err
	}

	var apptsToday int64
	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := db.Model(&models.Appointment{}).
		Where("scheduled_for >= ? AND scheduled_for < ?", startOfDay, startOfDay.Add(24*time.Hour)).
		Count(&apptsToday).Error; err != nil {
		return err
	}
	return cache.Set(CacheKeyApptsToday, apptsToday, CacheExpiration)
}

// GetPipelineStats returns the dashboard rollups, preferring cached values
// and falling back to the database per stage.
func GetPipelineStats() (*PipelineStats, error) {
	UpdateCacheIfNeeded()

	stats := &PipelineStats{StageCounts: make(map[string]int64)}
	db := database.GetDB()

	for _, stage := range pipeline.ActiveStages() {
		if v, err := cache.GetInt(fmt.Sprintf(CacheKeyStageCount, stage)); err == nil {
			stats.StageCounts[stage] = int64(v)
			continue
		}
		var n int64
		if err := db.Model(&models.Deal{}).Where("stage = ?", stage).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.StageCounts[stage] = n
	}
	for _, n := range stats.StageCounts {
		stats.OpenDeals += n
	}

	if v, err := cache.GetInt(CacheKeyApptsToday); err == nil {
		stats.AppointmentsToday = int64(v)
	}

	return stats, nil
}

// DealAlert is a deal that has been idle in its stage past the threshold.
type DealAlert struct {
	DealID    uint      `json:"deal_id"`
	DealUUID  string    `json:"deal_uuid"`
	Stage     string    `json:"stage"`
	IdleSince time.Time `json:"idle_since"`
	IdleDays  int       `json:"idle_days"`
}

// StaleDealAlerts lists open deals whose stage has not moved for at least the
// given number of days.
func StaleDealAlerts(days int) ([]DealAlert, error) {
	if days <= 0 {
		days = 14
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var deals []models.Deal
	err := database.GetDB().
		Where("stage IN ?", pipeline.ActiveStages()).
		Where("COALESCE(stage_changed_at, created_at) < ?", cutoff).
		Order("COALESCE(stage_changed_at, created_at) ASC").
		Limit(100).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]DealAlert, 0, len(deals))
	now := time.Now()
	for _, d := range deals {
		since := d.CreatedAt
		if d.StageChangedAt != nil {
			since = *d.StageChangedAt
		}
		alerts = append(alerts, DealAlert{
			DealID:    d.ID,
			DealUUID:  d.UUID,
			Stage:     d.Stage,
			IdleSince: since,
			IdleDays:  int(now.Sub(since).Hours() / 24),
		})
	}
	return alerts, nil
}

// FinancingAlert is an application sitting in a non-terminal status too long.
type FinancingAlert struct {
	ApplicationID uint      `json:"application_id"`
	DealID        uint      `json:"deal_id"`
	Lender        string    `json:"lender"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PendingFinancingAlerts lists financing applications stuck in a non-terminal
// status for at least the given number of days.
func PendingFinancingAlerts(days int) ([]FinancingAlert, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	nonTerminal := make([]string, 0, len(pipeline.FinancingStatusTable))
	for status := range pipeline.FinancingStatusTable {
		if !pipeline.IsTerminalState(status, pipeline.FinancingStatusTable) {
			nonTerminal = append(nonTerminal, status)
		}
	}

	var apps []models.FinancingApplication
	err := database.GetDB().
		Where("status IN ?", nonTerminal).
		Where("updated_at < ?", cutoff).
		Order("updated_at ASC").
		Limit(100).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]FinancingAlert, 0, len(apps))
	for _, a := range apps {
		alerts = append(alerts, FinancingAlert{
			ApplicationID: a.ID,
			DealID:        a.DealID,
			Lender:        a.Lender,
			Status:        a.Status,
			UpdatedAt:     a.UpdatedAt,
		})
	}
	return alerts, nil
}
