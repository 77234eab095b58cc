//go:build unix

package logfile

import "golang.org/x/sys/unix"

// checkReadable reports whether the process may open path for reading.
func checkReadable(path string) error {
	return unix.Access(path, unix.R_OK)
}
