// Package telemetry samples host CPU, memory and network counters and turns
// the raw counters into per-second rates for the heartbeat push.
package telemetry

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Sample is one raw reading of the host.
type Sample struct {
	CPUPercent    float64
	MemoryPercent float64
	BytesSent     uint64
	BytesRecv     uint64
}

// Sampler reads the host's current counters.
type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// HostSampler reads counters through gopsutil.
type HostSampler struct{}

// NewHostSampler creates a HostSampler.
func NewHostSampler() *HostSampler {
	return &HostSampler{}
}

// Sample reads CPU percent since the previous call, memory usage and the
// aggregate network byte counters.
func (HostSampler) Sample(ctx context.Context) (Sample, error) {
	var s Sample

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return s, fmt.Errorf("failed to read cpu: %w", err)
	}
	if len(percents) > 0 {
		s.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, fmt.Errorf("failed to read memory: %w", err)
	}
	s.MemoryPercent = vm.UsedPercent

	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return s, fmt.Errorf("failed to read network counters: %w", err)
	}
	if len(counters) > 0 {
		s.BytesSent = counters[0].BytesSent
		s.BytesRecv = counters[0].BytesRecv
	}
	return s, nil
}
