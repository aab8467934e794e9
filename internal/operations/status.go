package operations

import (
	"context"
	"strings"

	"lteman/internal/constants"
)

// Status reflects the underlying lifecycle facts plus live service state
type Status struct {
	Installed        bool   `json:"installed"`
	Started          bool   `json:"started"`
	CoreAddressKnown bool   `json:"core_address_known"`
	CoreAddress      string `json:"core_address,omitempty"`
	UeAttached       bool   `json:"ue_attached"`
	Message          string `json:"message"`
}

// Status composes the operator-facing status from persisted facts and
// current activation state
func (m *Manager) Status(ctx context.Context) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(ctx)
}

func (m *Manager) status(ctx context.Context) (Status, error) {
	facts, err := m.store.Load(ctx)
	if err != nil {
		return Status{}, err
	}

	s := Status{
		Installed:        facts.Installed,
		CoreAddressKnown: facts.MMEAddr != "",
		CoreAddress:      facts.MMEAddr,
	}
	s.Started = facts.Started && m.rec.IsActive(ctx, constants.EnbService)
	s.UeAttached = facts.UeAttached && m.rec.IsActive(ctx, constants.UeService)

	var b strings.Builder
	if s.Installed {
		b.WriteString("SW installed. ")
	}
	if s.Started {
		b.WriteString("srsenb started. ")
		if s.CoreAddressKnown {
			b.WriteString("mme: " + s.CoreAddress + ". ")
		} else {
			b.WriteString("waiting for core-network address. ")
		}
		if s.UeAttached {
			b.WriteString("ue attached. ")
		}
	}
	s.Message = strings.TrimSpace(b.String())
	return s, nil
}
