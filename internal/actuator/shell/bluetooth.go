package shell

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// Bluetooth drives the BlueZ controller through bluetoothctl. It implements
// both actuator.RadioController and actuator.PeripheralConnector.
type Bluetooth struct {
	runner  Runner
	profile Profile
	logger  *log.Logger
}

// NewBluetooth creates a Bluetooth actuator.
func NewBluetooth(runner Runner, profile Profile, logger *log.Logger) *Bluetooth {
	if logger == nil {
		logger = log.Default()
	}
	return &Bluetooth{runner: runner, profile: profile, logger: logger}
}

// Enable powers the radio on. bluetoothctl reports success for a radio that
// is already powered, so the call is idempotent.
func (b *Bluetooth) Enable(ctx context.Context) actuator.Outcome {
	out, err := run(ctx, b.runner, b.profile.RadioOn)
	if err != nil {
		return actuator.Failure(err)
	}
	b.logger.Printf("bluetooth radio on: %s", out)
	return actuator.Success("radio enabled")
}

// Connect finds a paired device whose name matches and connects it.
// Best-effort: an already-connected device reports success from bluetoothctl.
func (b *Bluetooth) Connect(ctx context.Context, deviceName string) actuator.Outcome {
	out, err := run(ctx, b.runner, b.profile.ListDevices)
	if err != nil {
		return actuator.Failure(err)
	}

	mac, name, found := findDevice(out, deviceName)
	if !found {
		return actuator.Failure(fmt.Errorf("no paired device matches %q", deviceName))
	}

	if _, err := run(ctx, b.runner, b.profile.ConnectDevice, mac); err != nil {
		return actuator.Failure(fmt.Errorf("connect %s (%s): %w", name, mac, err))
	}
	return actuator.Success(fmt.Sprintf("connected %s (%s)", name, mac))
}

// findDevice parses `bluetoothctl devices` output and returns the first
// device matching the target name. Lines look like:
//
//	Device AA:BB:CC:DD:EE:FF Echo Show 5
func findDevice(listing, target string) (mac, name string, found bool) {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(fields) < 3 || fields[0] != "Device" {
			continue
		}
		if actuator.MatchesDeviceName(fields[2], target) {
			return fields[1], fields[2], true
		}
	}
	return "", "", false
}
