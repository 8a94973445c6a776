package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
)

type ComplaintEventType string

const (
	EventComplaintCreated ComplaintEventType = "complaint_created"
	EventStatusChanged    ComplaintEventType = "status_changed"
	EventAssigned         ComplaintEventType = "assigned"
	EventImagesUploaded   ComplaintEventType = "images_uploaded"
)

// ComplaintEvent is emitted after a complaint write has been persisted.
type ComplaintEvent struct {
	Type      ComplaintEventType
	Complaint *domain.Complaint
	ActorID   uuid.UUID
	OldStatus domain.ComplaintStatus
	NewStatus domain.ComplaintStatus
	Note      *string
	// ImageCount is set for EventImagesUploaded.
	ImageCount int
}

type ComplaintListener interface {
	HandleComplaintEvent(ctx context.Context, event ComplaintEvent) error
}

// Dispatcher fans a complaint event out to its listeners. Delivery is
// best-effort and synchronous: a failing listener is logged and skipped, the
// remaining listeners still run, and nothing is retried. The complaint write
// itself has already committed by the time Dispatch runs.
type Dispatcher struct {
	listeners []ComplaintListener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(listener ComplaintListener) {
	d.listeners = append(d.listeners, listener)
}

func (d *Dispatcher) Dispatch(ctx context.Context, event ComplaintEvent) {
	for _, listener := range d.listeners {
		if err := listener.HandleComplaintEvent(ctx, event); err != nil {
			log.Printf("complaint event %s: listener failed: %v", event.Type, err)
		}
	}
}
