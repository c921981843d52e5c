package telemetry

import (
	"context"
	"math"
	"time"
)

// Snapshot is the payload of one stats push.
type Snapshot struct {
	CPU          float64 `json:"cpu"`
	RAM          float64 `json:"ram"`
	NetSentSpeed float64 `json:"net_sent_speed"`
	NetRecvSpeed float64 `json:"net_recv_speed"`
}

// Meter converts successive samples into rates. It belongs to one session
// and is not safe for concurrent use.
type Meter struct {
	sampler Sampler
	now     func() time.Time

	primed   bool
	prev     Sample
	prevTime time.Time
}

// NewMeter creates a Meter over sampler.
func NewMeter(sampler Sampler) *Meter {
	return &Meter{sampler: sampler, now: time.Now}
}

// Snapshot samples the host and returns rates since the previous call.
// The first call reports zero network speed. A counter that went backwards
// (interface reset) also reports zero.
func (m *Meter) Snapshot(ctx context.Context) (Snapshot, error) {
	s, err := m.sampler.Sample(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	now := m.now()

	snap := Snapshot{
		CPU: round1(s.CPUPercent),
		RAM: round1(s.MemoryPercent),
	}
	if m.primed {
		elapsed := now.Sub(m.prevTime).Seconds()
		snap.NetSentSpeed = rate(m.prev.BytesSent, s.BytesSent, elapsed)
		snap.NetRecvSpeed = rate(m.prev.BytesRecv, s.BytesRecv, elapsed)
	}

	m.prev = s
	m.prevTime = now
	m.primed = true
	return snap, nil
}

func rate(prev, cur uint64, seconds float64) float64 {
	if cur < prev || seconds <= 0 {
		return 0
	}
	return math.Round(float64(cur-prev) / seconds)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
