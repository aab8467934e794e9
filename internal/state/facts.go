package state

import (
	"context"
	"strconv"
)

// Fact keys. The value set mirrors what the lifecycle handlers need to
// remember between invocations.
const (
	KeyMMEAddr    = "mme_addr"
	KeyBindAddr   = "bind_addr"
	KeyUsimIMSI   = "usim_imsi"
	KeyUsimK      = "usim_k"
	KeyUsimOPC    = "usim_opc"
	KeyInstalled  = "installed"
	KeyStarted    = "started"
	KeyUeAttached = "ue_attached"
)

// Facts is a snapshot of all persisted facts at one point in time
type Facts struct {
	MMEAddr    string
	BindAddr   string
	UsimIMSI   string
	UsimK      string
	UsimOPC    string
	Installed  bool
	Started    bool
	UeAttached bool
}

// Credentials reports whether the full subscriber identity triplet is present
func (f Facts) Credentials() bool {
	return f.UsimIMSI != "" && f.UsimK != "" && f.UsimOPC != ""
}

// Load reads all facts in one snapshot
func (s *Store) Load(ctx context.Context) (Facts, error) {
	var f Facts
	var err error

	if f.MMEAddr, _, err = s.Get(ctx, KeyMMEAddr); err != nil {
		return f, err
	}
	if f.BindAddr, _, err = s.Get(ctx, KeyBindAddr); err != nil {
		return f, err
	}
	if f.UsimIMSI, _, err = s.Get(ctx, KeyUsimIMSI); err != nil {
		return f, err
	}
	if f.UsimK, _, err = s.Get(ctx, KeyUsimK); err != nil {
		return f, err
	}
	if f.UsimOPC, _, err = s.Get(ctx, KeyUsimOPC); err != nil {
		return f, err
	}
	if f.Installed, err = s.GetBool(ctx, KeyInstalled); err != nil {
		return f, err
	}
	if f.Started, err = s.GetBool(ctx, KeyStarted); err != nil {
		return f, err
	}
	if f.UeAttached, err = s.GetBool(ctx, KeyUeAttached); err != nil {
		return f, err
	}
	return f, nil
}

// GetBool returns a boolean fact, defaulting to false when unset
func (s *Store) GetBool(ctx context.Context, key string) (bool, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return b, nil
}

// SetBool persists a boolean fact
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// SetCredentials persists the subscriber identity triplet
func (s *Store) SetCredentials(ctx context.Context, imsi, k, opc string) error {
	if err := s.Set(ctx, KeyUsimIMSI, imsi); err != nil {
		return err
	}
	if err := s.Set(ctx, KeyUsimK, k); err != nil {
		return err
	}
	return s.Set(ctx, KeyUsimOPC, opc)
}

// ClearCredentials removes the subscriber identity triplet
func (s *Store) ClearCredentials(ctx context.Context) error {
	for _, key := range []string{KeyUsimIMSI, KeyUsimK, KeyUsimOPC} {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
