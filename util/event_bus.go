package util

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/sprintdeck/api/logging"
)

// Event types published by the services. Subscribers register against
// these names.
const (
	EventOrganizationCreated = "organization.created"
	EventOrganizationUpdated = "organization.updated"

	EventMemberCreated     = "member.created"
	EventMemberRoleChanged = "member.role_changed"
	EventMemberSetAttached = "member.permission_set_attached"
	EventMemberRemoved     = "member.removed"

	EventPermissionSetCreated = "permission_set.created"
	EventPermissionSetUpdated = "permission_set.updated"
	EventPermissionSetDeleted = "permission_set.deleted"

	EventProjectCreated        = "project.created"
	EventProjectUpdated        = "project.updated"
	EventProjectDeleted        = "project.deleted"
	EventProjectMemberAssigned = "project.member_assigned"

	EventTaskCreated    = "task.created"
	EventWorklogCreated = "worklog.created"
)

// Event is a domain event carrying the id of the record it concerns.
type Event struct {
	Type       string
	SubjectID  string
	OccurredAt time.Time
}

// EventHandler consumes one event. Returning an error only logs it;
// publishers are never blocked or failed by a subscriber.
type EventHandler func(context.Context, Event) error

// EventBus is an in-process pub/sub fan-out. Events are queued and
// dispatched by a single worker, so handlers for one event type run in
// publication order.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventHandler
	queue       chan Event
}

const eventQueueSize = 256

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		queue:       make(chan Event, eventQueueSize),
	}
}

// Subscribe registers a handler for an event type. Must be called
// before Start.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish enqueues an event for dispatch. A full queue drops the event
// with a warning rather than stalling the request path.
func (eb *EventBus) Publish(ctx context.Context, eventType string, subjectID string) {
	event := Event{
		Type:       eventType,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
	}
	select {
	case eb.queue <- event:
	default:
		logger.Warn("Event queue full, dropping event",
			zap.String("eventType", eventType),
			zap.String("subjectID", subjectID))
	}
}

// Start launches the dispatch worker. It drains the queue until ctx is
// cancelled.
func (eb *EventBus) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case event := <-eb.queue:
				eb.dispatch(ctx, event)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (eb *EventBus) dispatch(ctx context.Context, event Event) {
	eb.mu.RLock()
	handlers := eb.subscribers[event.Type]
	eb.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			logger.Error("Event handler failed",
				zap.String("eventType", event.Type),
				zap.String("subjectID", event.SubjectID),
				zap.Error(err))
		}
	}
}
