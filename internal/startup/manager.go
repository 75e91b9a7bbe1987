// Package startup manages launch-at-login registration via an XDG autostart
// desktop entry. It is consulted at application start and when the autostart
// setting changes; the activation workflow never touches it.
package startup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const desktopFileName = "spotify-remote.desktop"

// Manager writes and removes the autostart desktop entry.
type Manager struct {
	dir    string
	logger *log.Logger
}

// NewManager creates a Manager targeting the user's autostart directory
// (~/.config/autostart). dir overrides the location when non-empty.
func NewManager(dir string, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(configDir, "autostart")
	}
	return &Manager{dir: dir, logger: logger}, nil
}

// IsEnabled reports whether the autostart entry exists.
func (m *Manager) IsEnabled() bool {
	_, err := os.Stat(filepath.Join(m.dir, desktopFileName))
	return err == nil
}

// SetEnabled writes or removes the autostart entry.
func (m *Manager) SetEnabled(enabled bool) error {
	path := filepath.Join(m.dir, desktopFileName)

	if !enabled {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove autostart entry: %w", err)
		}
		m.logger.Printf("Autostart disabled")
		return nil
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}

	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Spotify Remote
Comment=Activation trigger server for the living-room speaker
Exec=%s
X-GNOME-Autostart-enabled=true
`, executable)

	if err := os.WriteFile(path, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	m.logger.Printf("Autostart enabled (%s)", path)
	return nil
}
