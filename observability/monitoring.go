package observability

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is the health view of the running service.
type ProcessStats struct {
	PID        int32   `json:"pid"`
	Status     string  `json:"status"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"mem_percent"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
	Uptime     string  `json:"uptime"`
}

type Monitor struct {
	log     *slog.Logger
	pid     int32
	started time.Time
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log, pid: int32(os.Getpid()), started: time.Now()}
}

// Snapshot reads the process figures; gopsutil failures are logged and leave the field empty.
func (m *Monitor) Snapshot() ProcessStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := ProcessStats{
		PID:        m.pid,
		AllocMemMb: mem.Alloc / 1024 / 1024,
		NumGC:      mem.NumGC,
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(m.started).Round(time.Second).String(),
	}

	p, err := process.NewProcess(m.pid)
	if err != nil {
		m.log.Debug("Error while retrieving process", "pid", m.pid, "err", err)
		return stats
	}
	if status, err := p.Status(); err == nil {
		stats.Status = status
	} else {
		m.log.Debug("Error while finding process status", "err", err)
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	} else {
		m.log.Debug("Error while finding process cpu usage", "err", err)
	}
	if ram, err := p.MemoryPercent(); err == nil {
		stats.MemPercent = ram
	} else {
		m.log.Debug("Error while finding process ram usage", "err", err)
	}
	return stats
}
