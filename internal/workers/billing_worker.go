package workers

import (
	"context"
	"time"

	"rtw_backend/internal/logger"

	"gorm.io/gorm"
)

// BillingWorker handles the two time-driven billing chores: expiring stale
// pending purchases and clearing lapsed subscriptions. Reset and verification
// tokens need no sweep; their expiry is checked at query time.
type BillingWorker struct {
	db *gorm.DB

	// Pending purchases older than this are treated as abandoned.
	pendingMaxAge time.Duration
	interval      time.Duration
}

func NewBillingWorker(db *gorm.DB) *BillingWorker {
	return &BillingWorker{
		db:            db,
		pendingMaxAge: 24 * time.Hour,
		interval:      time.Hour,
	}
}

func (w *BillingWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *BillingWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("billing worker stopped")
			return
		case <-ticker.C:
			w.expireStalePurchases()
			w.clearLapsedSubscriptions()
		}
	}
}

func (w *BillingWorker) expireStalePurchases() {
	cutoff := time.Now().Add(-w.pendingMaxAge)
	result := w.db.Exec(`
		UPDATE purchases
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND created_at < ?
	`, cutoff)
	if result.Error != nil {
		logger.WorkerLog("billing", "expire stale purchases", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("expired stale pending purchases", "count", result.RowsAffected)
	}
}

// clearLapsedSubscriptions drops the plan reference once the subscription
// window closes. Remaining wallet credits stay spendable.
func (w *BillingWorker) clearLapsedSubscriptions() {
	result := w.db.Exec(`
		UPDATE employers
		SET plan_id = NULL, updated_at = NOW()
		WHERE plan_id IS NOT NULL
		AND subscription_expires_at IS NOT NULL
		AND subscription_expires_at < NOW()
	`)
	if result.Error != nil {
		logger.WorkerLog("billing", "clear lapsed subscriptions", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("cleared lapsed subscriptions", "count", result.RowsAffected)
	}
}
