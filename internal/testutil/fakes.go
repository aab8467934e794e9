package testutil

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"lteman/internal/systemd"
)

// FakeServiceManager is an in-memory stand-in for the systemd manager. It
// renders specs for real so change detection behaves like production, and
// records every mutating call for assertions.
type FakeServiceManager struct {
	mu       sync.Mutex
	Units    map[string][]byte
	Active   map[string]bool
	Enabled  map[string]bool
	Restarts map[string]int
	Calls    []string

	// Errs injects a failure per call, keyed "action name"
	Errs map[string]error
}

// NewFakeServiceManager returns an empty fake service manager
func NewFakeServiceManager() *FakeServiceManager {
	return &FakeServiceManager{
		Units:    make(map[string][]byte),
		Active:   make(map[string]bool),
		Enabled:  make(map[string]bool),
		Restarts: make(map[string]int),
		Errs:     make(map[string]error),
	}
}

func (f *FakeServiceManager) record(action, name string) error {
	f.Calls = append(f.Calls, action+" "+name)
	return f.Errs[action+" "+name]
}

// Create implements reconciler.ServiceManager
func (f *FakeServiceManager) Create(ctx context.Context, spec systemd.ServiceSpec) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("create", spec.Name); err != nil {
		return false, err
	}
	if !spec.Valid() {
		return false, fmt.Errorf("invalid spec for %q", spec.Name)
	}

	data, err := systemd.Render(spec)
	if err != nil {
		return false, err
	}
	changed := !bytes.Equal(f.Units[spec.Name], data)
	f.Units[spec.Name] = data
	return changed, nil
}

// Delete implements reconciler.ServiceManager
func (f *FakeServiceManager) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("delete", name); err != nil {
		return err
	}
	delete(f.Units, name)
	delete(f.Active, name)
	delete(f.Enabled, name)
	return nil
}

// Enable implements reconciler.ServiceManager
func (f *FakeServiceManager) Enable(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("enable", name); err != nil {
		return err
	}
	f.Enabled[name] = true
	return nil
}

// Start implements reconciler.ServiceManager
func (f *FakeServiceManager) Start(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("start", name); err != nil {
		return err
	}
	f.Active[name] = true
	return nil
}

// Stop implements reconciler.ServiceManager
func (f *FakeServiceManager) Stop(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("stop", name); err != nil {
		return err
	}
	f.Active[name] = false
	return nil
}

// Restart implements reconciler.ServiceManager
func (f *FakeServiceManager) Restart(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("restart", name); err != nil {
		return err
	}
	f.Active[name] = true
	f.Restarts[name]++
	return nil
}

// IsActive implements reconciler.ServiceManager
func (f *FakeServiceManager) IsActive(ctx context.Context, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Active[name]
}

// Unit returns the rendered unit content for name as a string
func (f *FakeServiceManager) Unit(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.Units[name])
}

// MutatingCalls returns every recorded call except reads
func (f *FakeServiceManager) MutatingCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]string, len(f.Calls))
	copy(calls, f.Calls)
	return calls
}

// FakeResolver is a canned address resolver
type FakeResolver struct {
	// Addr and OK are returned by Resolve when no override is given
	Addr string
	OK   bool

	// IfaceAddrs maps interface names to their address
	IfaceAddrs map[string]string
	// IfaceAfter makes InterfaceAddr fail this many times before
	// consulting IfaceAddrs, to exercise polling
	IfaceAfter int
	IfaceCalls int

	RouteRemoved bool
	RouteErr     error
}

// Resolve implements operations.AddressResolver
func (r *FakeResolver) Resolve(override, bindSubnet string) (string, bool) {
	if override != "" {
		return override, true
	}
	return r.Addr, r.OK
}

// InterfaceAddr implements operations.AddressResolver
func (r *FakeResolver) InterfaceAddr(name string) (string, error) {
	r.IfaceCalls++
	if r.IfaceCalls <= r.IfaceAfter {
		return "", fmt.Errorf("interface %s has no address", name)
	}
	addr, ok := r.IfaceAddrs[name]
	if !ok {
		return "", fmt.Errorf("no such interface: %s", name)
	}
	return addr, nil
}

// RemoveDefaultGateway implements operations.AddressResolver
func (r *FakeResolver) RemoveDefaultGateway() error {
	r.RouteRemoved = true
	return r.RouteErr
}

// FakeInstaller records pipeline steps and can fail any of them
type FakeInstaller struct {
	Steps []string
	Errs  map[string]error
}

// NewFakeInstaller returns an empty fake installer
func NewFakeInstaller() *FakeInstaller {
	return &FakeInstaller{Errs: make(map[string]error)}
}

func (f *FakeInstaller) step(name string) error {
	f.Steps = append(f.Steps, name)
	return f.Errs[name]
}

// InstallPackages implements operations.Installer
func (f *FakeInstaller) InstallPackages(ctx context.Context) error { return f.step("packages") }

// ResetEnvironment implements operations.Installer
func (f *FakeInstaller) ResetEnvironment() error { return f.step("reset") }

// Fetch implements operations.Installer
func (f *FakeInstaller) Fetch(ctx context.Context) error { return f.step("fetch") }

// Build implements operations.Installer
func (f *FakeInstaller) Build(ctx context.Context) error { return f.step("build") }

// CopyConfigFiles implements operations.Installer
func (f *FakeInstaller) CopyConfigFiles() error { return f.step("copy") }

// FakeClock advances on Sleep instead of blocking, so timeout paths run
// instantly
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	Sleeps []time.Duration
}

// NewFakeClock returns a fake clock starting at the given instant
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now implements operations.Clock
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep implements operations.Clock
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.Sleeps = append(c.Sleeps, d)
}
