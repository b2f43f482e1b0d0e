// internal/app/system/sheets/mirror.go
package sheets

import (
	"context"
	"sync"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	mirrorQueueSize = 64
	appendTimeout   = 30 * time.Second
)

// Mirror is a background worker that appends membership applications to
// the spreadsheet, one row per application. Enqueue never blocks the
// submitting request: when the queue is full or the mirror is disabled the
// application is dropped from the mirror with a warning (the document
// store remains the source of truth).
type Mirror struct {
	appender Appender
	log      *zap.Logger

	queue  chan models.MembershipApplication
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewMirror creates the mirror worker. appender may be nil, which disables
// mirroring entirely.
func NewMirror(appender Appender, logger *zap.Logger) *Mirror {
	return &Mirror{
		appender: appender,
		log:      logger,
		queue:    make(chan models.MembershipApplication, mirrorQueueSize),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background append loop.
func (m *Mirror) Start() {
	if m.appender == nil {
		m.log.Info("spreadsheet mirror disabled")
		return
	}
	m.wg.Add(1)
	go m.run()
	m.log.Info("spreadsheet mirror started")
}

// Stop signals the worker to stop and waits for it to finish. Queued rows
// that have not been appended yet are dropped.
func (m *Mirror) Stop() {
	if m.appender == nil {
		return
	}
	close(m.stopCh)
	m.wg.Wait()
	m.log.Info("spreadsheet mirror stopped")
}

// Enqueue submits an application for mirroring. Fire-and-forget.
func (m *Mirror) Enqueue(app models.MembershipApplication) {
	if m.appender == nil {
		return
	}
	select {
	case m.queue <- app:
	default:
		m.log.Warn("spreadsheet mirror queue full, dropping row",
			zap.String("membership_id", app.MembershipID))
	}
}

func (m *Mirror) run() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			return
		case app := <-m.queue:
			m.append(app)
		}
	}
}

func (m *Mirror) append(app models.MembershipApplication) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := m.appender.Append(ctx, SheetName(app), Row(app)); err != nil {
		m.log.Warn("spreadsheet mirror append failed",
			zap.String("membership_id", app.MembershipID),
			zap.Error(err))
	}
}

// SheetName is the tab an application lands on: "<department>-<year>",
// e.g. "AI&DS-2027".
func SheetName(app models.MembershipApplication) string {
	return app.Department + "-" + app.Year
}

// Row flattens an application into the spreadsheet column order.
func Row(app models.MembershipApplication) []interface{} {
	return []interface{}{
		app.MembershipID,
		app.Name,
		app.RollNumber,
		app.RegisterNumber,
		app.Year,
		app.Section,
		app.Department,
		app.Email,
		app.Participation,
		app.CreatedAt.UTC().Format(time.RFC3339),
	}
}
