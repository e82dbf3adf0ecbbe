package auditlog

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

// Recorder appends security events (logins, failed logins, logouts) to
// the security_logs table. Callers fire it with `go` so a slow insert
// never blocks the request path; a failed insert is logged and dropped.
type Recorder struct {
	r   *repository.Repository
	log *zap.Logger
}

func NewRecorder(r *repository.Repository, log *zap.Logger) *Recorder {
	return &Recorder{r: r, log: log}
}

func (a *Recorder) Record(event models.SecurityLog) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := a.r.GoquDBWrapper.Insert("security_logs").
		Rows(goqu.Record{
			"id":                event.ID,
			"user_id":           event.UserID,
			"event_type":        event.EventType,
			"status":            event.Status,
			"event_description": event.Description,
			"severity":          event.Severity,
			"shop_id":           event.ShopID,
			"created_at":        event.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		a.log.Warn("unable to record security event",
			zap.String("event_type", event.EventType),
			zap.Error(err))
		return
	}
}

// RecentForUser returns the latest security events for one user, newest
// first.
func (a *Recorder) RecentForUser(userID string, limit uint) ([]models.SecurityLog, error) {
	var events []models.SecurityLog
	query := a.r.GoquDBWrapper.
		From("security_logs").
		Select("id", "user_id", "event_type", "status", "event_description", "severity", "shop_id", "created_at").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&events); err != nil {
		return nil, err
	}

	return events, nil
}
