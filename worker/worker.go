package worker

import (
	"log"
	"time"

	"tripweaver/database"
)

const (
	// MaintenanceInterval is how often the cleanup cycle runs.
	MaintenanceInterval = 6 * time.Hour

	// MaxSessionAge is how long finished and abandoned sessions are kept.
	MaxSessionAge = 30 * 24 * time.Hour
)

// StartMaintenance launches the background cycle that prunes old sessions
// and logs storage stats. It returns immediately; the cycle runs for the
// life of the process.
func StartMaintenance() {
	ticker := time.NewTicker(MaintenanceInterval)

	go func() {
		for range ticker.C {
			runCycle()
		}
	}()

	log.Printf("✅ Maintenance worker started (every %v, pruning sessions older than %d days)",
		MaintenanceInterval, int(MaxSessionAge.Hours()/24))
}

func runCycle() {
	cutoff := time.Now().Add(-MaxSessionAge)

	deleted, err := database.DeleteSessionsBefore(cutoff)
	if err != nil {
		log.Printf("⚠️  Session cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("💾 Pruned %d sessions older than %s", deleted, cutoff.Format("2006-01-02"))
	}

	stats, err := database.SessionStats()
	if err != nil {
		log.Printf("⚠️  Session stats failed: %v", err)
		return
	}
	log.Printf("💾 Sessions stored: %d total, %d processing, %d completed, %d failed",
		stats.Total,
		stats.ByStatus[database.StatusProcessing],
		stats.ByStatus[database.StatusCompleted],
		stats.ByStatus[database.StatusFailed])
}
