package netif

import (
	"net"

	"lteman/internal/errors"
	"lteman/internal/logger"
)

// Resolver produces a usable local bind address
type Resolver struct {
	source AddrSource
}

// NewResolver creates a resolver backed by the given source
func NewResolver(source AddrSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns a bind address and whether one could be determined.
// Precedence: explicit override verbatim, then the first local address
// inside bindSubnet, then the address on the default-route interface.
// A malformed subnet reads as "no match", never as an error.
func (r *Resolver) Resolve(override, bindSubnet string) (string, bool) {
	if override != "" {
		return override, true
	}

	if bindSubnet != "" {
		_, subnet, err := net.ParseCIDR(bindSubnet)
		if err != nil {
			logger.WithField("subnet", bindSubnet).Warn("malformed bind subnet, no address resolved")
			return "", false
		}

		networks, err := r.source.Networks()
		if err != nil {
			logger.Warnf("failed to list local networks: %v", err)
			return "", false
		}
		for _, network := range networks {
			if subnet.Contains(network.IP) {
				return network.IP.String(), true
			}
		}
		return "", false
	}

	addr, err := r.source.DefaultRouteAddr()
	if err != nil || addr == "" {
		return "", false
	}
	return addr, true
}

// InterfaceAddr returns the IPv4 address assigned to a named interface
func (r *Resolver) InterfaceAddr(name string) (string, error) {
	addr, err := r.source.InterfaceAddr(name)
	if err != nil {
		return "", err
	}
	return addr, nil
}

// RemoveDefaultGateway removes the IPv4 default route
func (r *Resolver) RemoveDefaultGateway() error {
	if err := r.source.DeleteDefaultRoute(); err != nil {
		return errors.RouteChangeFailed(err)
	}
	logger.Info("default route removed")
	return nil
}

// IsIPv4 reports whether addr is a well-formed dotted-quad IPv4 address
func IsIPv4(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && ip.To4() != nil && ip.String() == addr
}
