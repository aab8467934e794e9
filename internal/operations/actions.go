package operations

import (
	"context"

	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/logger"
	"lteman/internal/reconciler"
	"lteman/internal/state"
)

// ActionResult is the status/message pair every action returns
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	IP      string `json:"ip,omitempty"`
}

// AttachUE attaches the UE emulator with the given subscriber identity.
// Preconditions: the full credential triplet, a running eNodeB, no UE
// already attached. On success the assigned tunnel IP is returned; if the
// tunnel interface never appears the action fails with a timeout reason.
func (m *Manager) AttachUE(ctx context.Context, imsi, k, opc string) (ActionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	creds := reconciler.Credentials{IMSI: imsi, K: k, OPC: opc}
	if !creds.Complete() {
		return ActionResult{}, errors.PreconditionNotMet("usim-imsi, usim-k and usim-opc are all required")
	}
	if !m.rec.IsActive(ctx, constants.EnbService) {
		return ActionResult{}, errors.PreconditionNotMet("eNodeB service is not running")
	}

	facts, err := m.store.Load(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	if facts.UeAttached {
		return ActionResult{}, errors.PreconditionNotMet("UE is already attached")
	}

	if err := m.store.SetCredentials(ctx, imsi, k, opc); err != nil {
		return ActionResult{}, err
	}
	if _, err := m.rec.Converge(ctx, reconciler.ComputeUeSpec(m.cfg, creds)); err != nil {
		return ActionResult{}, err
	}
	if err := m.rec.Restart(ctx, constants.UeService); err != nil {
		return ActionResult{}, err
	}

	ip, err := m.waitForUeInterface(ctx)
	if err != nil {
		return ActionResult{}, err
	}

	if err := m.store.SetBool(ctx, state.KeyUeAttached, true); err != nil {
		return ActionResult{}, err
	}

	logger.WithField("ip", ip).Info("UE attached")
	return ActionResult{
		Status:  "ok",
		Message: "Attached successfully",
		IP:      ip,
	}, nil
}

// DetachUE detaches the UE emulator. Detaching is best-effort and
// idempotent: it succeeds whether or not the UE was ever attached.
func (m *Manager) DetachUE(ctx context.Context) (ActionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rec.IsActive(ctx, constants.UeService) {
		if err := m.rec.Stop(ctx, constants.UeService); err != nil {
			logger.Warnf("failed to stop UE service on detach: %v", err)
		}
	}
	if err := m.store.ClearCredentials(ctx); err != nil {
		return ActionResult{}, err
	}
	if _, err := m.rec.Converge(ctx, reconciler.ComputeUeSpec(m.cfg, reconciler.Credentials{})); err != nil {
		logger.Warnf("failed to converge UE unit on detach: %v", err)
	}
	if err := m.store.SetBool(ctx, state.KeyUeAttached, false); err != nil {
		return ActionResult{}, err
	}

	logger.Info("UE detached")
	return ActionResult{
		Status:  "ok",
		Message: "Detached successfully",
	}, nil
}

// RemoveDefaultGW removes the host default route. Always reports success
// and never alters the service status.
func (m *Manager) RemoveDefaultGW(ctx context.Context) (ActionResult, error) {
	if err := m.resolver.RemoveDefaultGateway(); err != nil {
		logger.Warnf("failed to remove default route: %v", err)
	}
	return ActionResult{
		Status:  "ok",
		Message: "Default route removed!",
	}, nil
}

// waitForUeInterface polls for the UE tunnel interface address within the
// configured bound. Observing no address within the timeout is a
// first-class failure, distinct from a precondition error.
func (m *Manager) waitForUeInterface(ctx context.Context) (string, error) {
	deadline := m.clock.Now().Add(m.cfg.Attach.Timeout)
	for {
		if ip, err := m.resolver.InterfaceAddr(constants.UeInterface); err == nil && ip != "" {
			return ip, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !m.clock.Now().Before(deadline) {
			return "", errors.AttachTimeout(constants.UeInterface)
		}
		m.clock.Sleep(ctx, m.cfg.Attach.Interval)
	}
}
