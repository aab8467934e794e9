//go:build linux

package netif

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// netlinkSource reads host network state via the netlink API
type netlinkSource struct{}

// NewSource returns the production AddrSource
func NewSource() AddrSource {
	return netlinkSource{}
}

// Networks implements AddrSource
func (netlinkSource) Networks() ([]*net.IPNet, error) {
	addrs, err := netlink.AddrList(nil, netlink.FAMILY_V4)
	if err != nil {
		return nil, err
	}

	networks := make([]*net.IPNet, 0, len(addrs))
	for _, addr := range addrs {
		if addr.IPNet != nil {
			networks = append(networks, addr.IPNet)
		}
	}
	return networks, nil
}

// DefaultRouteAddr implements AddrSource
func (s netlinkSource) DefaultRouteAddr() (string, error) {
	route, ok, err := s.defaultRoute()
	if err != nil || !ok {
		return "", err
	}

	link, err := netlink.LinkByIndex(route.LinkIndex)
	if err != nil {
		return "", err
	}
	return firstAddr(link)
}

// InterfaceAddr implements AddrSource
func (netlinkSource) InterfaceAddr(name string) (string, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return "", err
	}
	return firstAddr(link)
}

// DeleteDefaultRoute implements AddrSource
func (s netlinkSource) DeleteDefaultRoute() error {
	route, ok, err := s.defaultRoute()
	if err != nil {
		return err
	}
	if !ok {
		// Nothing to remove.
		return nil
	}
	return netlink.RouteDel(&route)
}

func (netlinkSource) defaultRoute() (netlink.Route, bool, error) {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_V4)
	if err != nil {
		return netlink.Route{}, false, err
	}
	for _, route := range routes {
		if route.Dst == nil || route.Dst.IP.IsUnspecified() {
			return route, true, nil
		}
	}
	return netlink.Route{}, false, nil
}

func firstAddr(link netlink.Link) (string, error) {
	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("no IPv4 address on %s", link.Attrs().Name)
	}
	return addrs[0].IP.String(), nil
}
