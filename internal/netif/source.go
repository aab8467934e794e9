// Package netif resolves local bind addresses and manipulates the default
// route. All kernel interaction goes through the AddrSource interface so
// resolution logic stays a pure, testable query.
package netif

import "net"

// AddrSource abstracts the host's network state
type AddrSource interface {
	// Networks returns every locally assigned IPv4 network
	Networks() ([]*net.IPNet, error)

	// DefaultRouteAddr returns the IPv4 address bound to the interface
	// carrying the default route, or "" when no default route exists
	DefaultRouteAddr() (string, error)

	// InterfaceAddr returns the first IPv4 address of a named interface
	InterfaceAddr(name string) (string, error)

	// DeleteDefaultRoute removes the IPv4 default route
	DeleteDefaultRoute() error
}
