//go:build !linux

package netif

import (
	"errors"
	"net"
)

var errUnsupported = errors.New("netif: only supported on linux")

type unsupportedSource struct{}

// NewSource returns a stub AddrSource on non-linux hosts
func NewSource() AddrSource {
	return unsupportedSource{}
}

func (unsupportedSource) Networks() ([]*net.IPNet, error)         { return nil, errUnsupported }
func (unsupportedSource) DefaultRouteAddr() (string, error)       { return "", errUnsupported }
func (unsupportedSource) InterfaceAddr(name string) (string, error) { return "", errUnsupported }
func (unsupportedSource) DeleteDefaultRoute() error               { return errUnsupported }
