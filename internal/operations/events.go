package operations

import (
	"context"
	"fmt"
)

// Event identifies an external trigger. The host process owns dispatch;
// handlers below run to completion, one at a time.
type Event string

const (
	EventInstall            Event = "install"
	EventStart              Event = "start"
	EventStop               Event = "stop"
	EventConfigChanged      Event = "config-changed"
	EventUpdateStatus       Event = "update-status"
	EventRemove             Event = "remove"
	EventCoreAddressChanged Event = "core-address-changed"
)

// Trigger is one dispatched event with its payload. Address is set only
// for EventCoreAddressChanged.
type Trigger struct {
	Event   Event
	Address string
}

// Dispatch runs the handler for one trigger to completion. Triggers are
// serialized; two reconciliation passes never overlap.
func (m *Manager) Dispatch(ctx context.Context, t Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch t.Event {
	case EventInstall:
		return m.install(ctx)
	case EventStart:
		return m.start(ctx)
	case EventStop:
		return m.stop(ctx)
	case EventConfigChanged:
		return m.configChanged(ctx)
	case EventUpdateStatus:
		_, err := m.status(ctx)
		return err
	case EventRemove:
		return m.remove(ctx)
	case EventCoreAddressChanged:
		return m.coreAddressChanged(ctx, t.Address)
	default:
		return fmt.Errorf("unknown event: %s", t.Event)
	}
}
