package shell

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the argv templates for every external command the shell
// actuators invoke. Runtime arguments (device MAC, sink name, volume, URI)
// are appended to the template. A YAML profile file can override individual
// entries for hosts where the default tooling differs.
type Profile struct {
	RadioOn        []string `yaml:"radio_on"`
	ListDevices    []string `yaml:"list_devices"`
	ConnectDevice  []string `yaml:"connect_device"`
	ListSinks      []string `yaml:"list_sinks"`
	SetDefaultSink []string `yaml:"set_default_sink"`
	UnmuteSink     []string `yaml:"unmute_sink"`
	SetSinkVolume  []string `yaml:"set_sink_volume"`
	PlayCue        []string `yaml:"play_cue"`
	PlayerStatus   []string `yaml:"player_status"`
	PlayerToggle   []string `yaml:"player_toggle"`
	LaunchURI      []string `yaml:"launch_uri"`
	Foreground     []string `yaml:"foreground"`
}

// DefaultProfile returns the built-in command set for a stock Linux desktop
// (BlueZ, PulseAudio/PipeWire via pactl, playerctl, wmctrl).
func DefaultProfile() Profile {
	return Profile{
		RadioOn:        []string{"bluetoothctl", "power", "on"},
		ListDevices:    []string{"bluetoothctl", "devices"},
		ConnectDevice:  []string{"bluetoothctl", "connect"},
		ListSinks:      []string{"pactl", "list", "sinks"},
		SetDefaultSink: []string{"pactl", "set-default-sink"},
		UnmuteSink:     []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "0"},
		SetSinkVolume:  []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@"},
		PlayCue:        []string{"paplay"},
		PlayerStatus:   []string{"playerctl", "--player=spotify", "status"},
		PlayerToggle:   []string{"playerctl", "--player=spotify", "play-pause"},
		LaunchURI:      []string{"xdg-open"},
		Foreground:     []string{"wmctrl", "-a", "Spotify"},
	}
}

// LoadProfile reads a YAML profile file and overlays it on the defaults.
// Only entries present in the file are overridden. An empty path returns the
// defaults unchanged.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read command profile: %w", err)
	}

	var overlay Profile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return profile, fmt.Errorf("parse command profile: %w", err)
	}

	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&profile.RadioOn, overlay.RadioOn)
	merge(&profile.ListDevices, overlay.ListDevices)
	merge(&profile.ConnectDevice, overlay.ConnectDevice)
	merge(&profile.ListSinks, overlay.ListSinks)
	merge(&profile.SetDefaultSink, overlay.SetDefaultSink)
	merge(&profile.UnmuteSink, overlay.UnmuteSink)
	merge(&profile.SetSinkVolume, overlay.SetSinkVolume)
	merge(&profile.PlayCue, overlay.PlayCue)
	merge(&profile.PlayerStatus, overlay.PlayerStatus)
	merge(&profile.PlayerToggle, overlay.PlayerToggle)
	merge(&profile.LaunchURI, overlay.LaunchURI)
	merge(&profile.Foreground, overlay.Foreground)

	return profile, nil
}
