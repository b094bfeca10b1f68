//go:build !unix

package httpclient

import "syscall"

// reuseAddrControl is a no-op on platforms without SO_REUSEADDR support.
func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
