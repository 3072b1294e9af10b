package audit

import (
	"context"
	"testing"

	"fixzit-be/internal/pkg/logger"
	"fixzit-be/pkg/aggregate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	warns  []map[string]interface{}
	errors []string
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *recordingLogger) Info(module, message string, details map[string]interface{})  {}
func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.warns = append(l.warns, details)
}
func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.errors = append(l.errors, message)
}
func (l *recordingLogger) Sync() error { return nil }
func (l *recordingLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (l *recordingLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func TestBypassIsLoggedLocallyWithoutNats(t *testing.T) {
	rec := &recordingLogger{}
	p := NewNatsPublisher(nil, rec)

	p.PublishTenantScopeBypassed(context.Background(), aggregate.BypassAudit{
		Actor:  "admin@fixzit",
		Reason: "migration backfill",
	}, "invoices")

	// The local trail must exist even with no broker connected.
	assert.Len(t, rec.warns, 1)
	assert.Equal(t, "admin@fixzit", rec.warns[0]["actor"])
	assert.Equal(t, "migration backfill", rec.warns[0]["reason"])
	assert.Equal(t, "invoices", rec.warns[0]["dataset"])
	assert.Empty(t, rec.errors)
}

func TestDomainEventsNoopWithoutNats(t *testing.T) {
	rec := &recordingLogger{}
	p := NewNatsPublisher(nil, rec)

	p.PublishWorkOrderCreated(context.Background(), uuid.New(), uuid.New(), "ticket")
	p.PublishInvoiceIssued(context.Background(), uuid.New(), uuid.New(), 10)

	assert.Empty(t, rec.errors)
}
