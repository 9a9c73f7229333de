package events

import (
	"context"
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventEmployeesImported EventType = "employees_imported"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
	// Batch marks events emitted inside a bulk operation. Subscribers that
	// rebuild derived state wait for the operation's closing event instead.
	Batch bool `json:"batch,omitempty"`
}

type batchKey struct{}

// WithBatch marks ctx as belonging to a bulk operation.
func WithBatch(ctx context.Context) context.Context {
	return context.WithValue(ctx, batchKey{}, true)
}

// InBatch reports whether ctx was marked by WithBatch.
func InBatch(ctx context.Context) bool {
	batch, _ := ctx.Value(batchKey{}).(bool)
	return batch
}

// EmployeeChangedPayload accompanies created and updated events.
type EmployeeChangedPayload struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// EmployeesImportedPayload summarises a bulk import.
type EmployeesImportedPayload struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}
