package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// ResolveState is a state of the playback resolver machine.
type ResolveState string

const (
	StateCheckingInitial  ResolveState = "checking_initial"
	StatePlaying          ResolveState = "playing"
	StateAttemptingResume ResolveState = "attempting_resume"
	StateAttemptingLaunch ResolveState = "attempting_launch"
	StateForcingToggle    ResolveState = "forcing_toggle"
	StateExhausted        ResolveState = "exhausted"
)

// SettleWindows are the fixed waits after each escalation action, before the
// player state is re-checked. External effects (toggle delivery, client cold
// start) take time to manifest; these bound how long each escalation waits.
type SettleWindows struct {
	Resume time.Duration
	Launch time.Duration
	Force  time.Duration
}

// DefaultSettleWindows returns the production windows: 3s after a resume
// toggle, 8s after a URI launch (cold-start latency), 5s after the forced
// toggle. Worst-case total resolution latency is roughly 16s.
func DefaultSettleWindows() SettleWindows {
	return SettleWindows{
		Resume: 3 * time.Second,
		Launch: 8 * time.Second,
		Force:  5 * time.Second,
	}
}

// ResolveResult is the terminal outcome of one resolution.
type ResolveResult struct {
	// State is the terminal state: StatePlaying or StateExhausted.
	State ResolveState `json:"state"`
	// Playing is the last observed playback state. After the forced toggle
	// the machine terminates Exhausted regardless of the final observation;
	// Playing still records what that final check saw.
	Playing  bool `json:"playing"`
	Toggles  int  `json:"toggles"`
	Launches int  `json:"launches"`
}

// Summary renders the result as a status line fragment.
func (r ResolveResult) Summary() string {
	if r.State == StatePlaying {
		return "playback confirmed"
	}
	if r.Playing {
		return "playback resolution exhausted; player observed playing on final check"
	}
	return fmt.Sprintf("playback resolution exhausted after %d toggles, %d launch", r.Toggles, r.Launches)
}

// Resolver drives the media player from an unknown state toward confirmed
// playback. The player exposes no reliable "play explicitly" command — only a
// stateless toggle and a URI-launch side channel — so the resolver infers
// state by polling and escalates through cheaper-to-more-disruptive actions:
// toggle, deep-link launch, toggle again. A toggle is only ever sent after a
// check observed "not playing", so the machine never flips a playing player
// back to paused with back-to-back toggles.
type Resolver struct {
	media   actuator.MediaController
	windows SettleWindows
	sleep   func(time.Duration)
	logger  *log.Logger
}

// NewResolver creates a Resolver. Zero windows fall back to the defaults.
func NewResolver(media actuator.MediaController, windows SettleWindows, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	if windows == (SettleWindows{}) {
		windows = DefaultSettleWindows()
	}
	return &Resolver{
		media:   media,
		windows: windows,
		sleep:   time.Sleep,
		logger:  logger,
	}
}

// Resolve runs the state machine once. It never re-enters a terminal state:
// the caller proceeds with whatever the result says.
func (r *Resolver) Resolve(ctx context.Context, uri string) ResolveResult {
	result := ResolveResult{State: StateCheckingInitial}

	// Initial check: an already-playing player is left alone.
	if r.media.IsPlaying(ctx) {
		result.State = StatePlaying
		result.Playing = true
		return result
	}

	// Attempt resume: one toggle, settle, re-check.
	result.State = StateAttemptingResume
	r.logger.Printf("Player silent, attempting resume")
	r.media.TogglePlayPause(ctx)
	result.Toggles++
	r.sleep(r.windows.Resume)
	if r.media.IsPlaying(ctx) {
		result.State = StatePlaying
		result.Playing = true
		return result
	}

	// Attempt launch: deep-link the configured URI, allow cold-start latency.
	result.State = StateAttemptingLaunch
	r.logger.Printf("Resume failed, launching %s", uri)
	r.media.Launch(ctx, uri)
	result.Launches++
	r.sleep(r.windows.Launch)
	if r.media.IsPlaying(ctx) {
		result.State = StatePlaying
		result.Playing = true
		return result
	}

	// Force: one last toggle, settle, check once, then stop escalating.
	result.State = StateForcingToggle
	r.logger.Printf("Launch did not auto-play, forcing toggle")
	r.media.TogglePlayPause(ctx)
	result.Toggles++
	r.sleep(r.windows.Force)
	result.Playing = r.media.IsPlaying(ctx)
	result.State = StateExhausted

	r.logger.Printf("Playback resolution exhausted (last observed playing=%v)", result.Playing)
	return result
}
