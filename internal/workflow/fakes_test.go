package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// fakeMedia scripts successive IsPlaying observations and counts actions.
type fakeMedia struct {
	mu          sync.Mutex
	playing     []bool
	checks      int
	toggles     int
	launches    int
	foregrounds int
	lastURI     string
}

func (f *fakeMedia) IsPlaying(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if len(f.playing) == 0 {
		return false
	}
	next := f.playing[0]
	if len(f.playing) > 1 {
		f.playing = f.playing[1:]
	}
	return next
}

func (f *fakeMedia) TogglePlayPause(ctx context.Context) actuator.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++
	return actuator.Success("toggled")
}

func (f *fakeMedia) Launch(ctx context.Context, uri string) actuator.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches++
	f.lastURI = uri
	return actuator.Success("launched")
}

func (f *fakeMedia) BringToForeground(ctx context.Context) actuator.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.foregrounds++
	return actuator.Success("foregrounded")
}

// fakeRadio counts enables; fails when broken.
type fakeRadio struct {
	enables int
	broken  bool
}

func (f *fakeRadio) Enable(ctx context.Context) actuator.Outcome {
	f.enables++
	if f.broken {
		return actuator.Outcome{OK: false, Detail: "radio stuck"}
	}
	return actuator.Success("radio enabled")
}

// fakePeripheral records connects; fails when broken; can block or panic to
// exercise the gate's exit paths.
type fakePeripheral struct {
	connects  int
	lastName  string
	broken    bool
	blockCh   chan struct{}
	panicWith any
}

func (f *fakePeripheral) Connect(ctx context.Context, deviceName string) actuator.Outcome {
	f.connects++
	f.lastName = deviceName
	if f.blockCh != nil {
		<-f.blockCh
	}
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.broken {
		return actuator.Outcome{OK: false, Detail: "device out of range"}
	}
	return actuator.Success("connected " + deviceName)
}

// fakeAudio records audio calls.
type fakeAudio struct {
	switches     int
	unmutes      int
	cues         int
	volumes      []int
	switchTarget string
	unmuteBroken bool
}

func (f *fakeAudio) SwitchOutput(ctx context.Context, deviceName string) actuator.Outcome {
	f.switches++
	f.switchTarget = deviceName
	return actuator.Success("switched")
}

func (f *fakeAudio) Unmute(ctx context.Context) actuator.Outcome {
	f.unmutes++
	if f.unmuteBroken {
		return actuator.Outcome{OK: false, Detail: "no default sink"}
	}
	return actuator.Success("unmuted")
}

func (f *fakeAudio) SetVolume(ctx context.Context, percent int) actuator.Outcome {
	f.volumes = append(f.volumes, actuator.ClampPercent(percent))
	return actuator.Success("volume set")
}

func (f *fakeAudio) PlayConfirmationCue(ctx context.Context) actuator.Outcome {
	f.cues++
	return actuator.Success("cue played")
}

var errSettingsUnavailable = errors.New("settings store unavailable")

// fakeSettings returns a fixed request.
type fakeSettings struct {
	req ActivationRequest
	err error
}

func (f *fakeSettings) ActivationRequest() (ActivationRequest, error) {
	return f.req, f.err
}

// fakeStatus records status lines.
type fakeStatus struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakeStatus) Set(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, status)
}

func (f *fakeStatus) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

// newTestResolver builds a resolver whose settle windows do not wait.
func newTestResolver(media actuator.MediaController) *Resolver {
	resolver := NewResolver(media, SettleWindows{Resume: time.Millisecond, Launch: time.Millisecond, Force: time.Millisecond}, nil)
	resolver.sleep = func(time.Duration) {}
	return resolver
}
