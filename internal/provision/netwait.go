package provision

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"newtbox/internal/config"
)

// probeState is the readiness loop state.
type probeState int

const (
	probeWaiting probeState = iota
	probeReady
	probeFailed
)

// WaitNetwork polls for outbound connectivity from inside the container:
// one single-packet probe per attempt, a fixed sleep between attempts,
// and a hard failure once the attempt budget is exhausted. First success
// wins.
func (p *Provisioner) WaitNetwork(ctx context.Context, vmid int) error {
	command := probeCommand(p.Config)
	state := probeWaiting
	attempt := 0

	p.Logger.Info("waiting for network", "vmid", vmid, "probe", p.Config.ProbeHost)
	for state == probeWaiting {
		attempt++
		p.Logger.Debug("network probe", "vmid", vmid, "attempt", attempt)
		if err := p.Host.Exec(ctx, vmid, command); err == nil {
			state = probeReady
			break
		}
		if attempt >= p.Config.ProbeAttempts {
			state = probeFailed
			break
		}
		p.pause(p.Config.ProbeInterval)
	}

	if state == probeFailed {
		return fmt.Errorf("%w: %d probes to %s all failed", ErrNetworkTimeout, attempt, p.Config.ProbeHost)
	}
	p.Logger.Info("network is up", "vmid", vmid, "attempts", attempt)
	return nil
}

// probeCommand builds the in-container reachability probe: one packet,
// short timeout.
func probeCommand(cfg *config.Config) []string {
	timeoutSecs := int(cfg.ProbeTimeout / time.Second)
	if timeoutSecs < 1 {
		timeoutSecs = 1
	}
	return []string{"ping", "-c", "1", "-W", strconv.Itoa(timeoutSecs), cfg.ProbeHost}
}
