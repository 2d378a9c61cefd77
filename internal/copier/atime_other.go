//go:build !linux && !darwin

package copier

import (
	"os"
	"time"
)

// accessTime falls back to the modification time where the platform's
// stat structure is not inspected.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
