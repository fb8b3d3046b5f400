// Package osutil holds OS-level constants shared across packages
package osutil

const (
	Windows = "windows"
	Darwin  = "darwin"
)

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
