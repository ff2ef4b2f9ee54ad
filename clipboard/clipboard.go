// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 terminal escape when no clipboard tool is reachable (SSH sessions,
// bare Wayland without wl-copy).
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"

	"github.com/andareed/gpias-marker/logging"
)

var systemCopy = sysclip.WriteAll

// Copy places text on the clipboard.
func Copy(text string) error {
	if !sysclip.Unsupported {
		err := systemCopy(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Debugf("Clipboard: system copy failed: %v", err)
	}
	if err := copyOSC52(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
