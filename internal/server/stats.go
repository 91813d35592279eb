// Package server provides host telemetry for the admin stats endpoint.
// It uses gopsutil for cross-platform system readings.
package server

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/researchsynth/researchsynth/internal/models"
)

// collectSystem gathers a point-in-time snapshot of host usage. Failures of
// individual probes leave the corresponding field at zero rather than
// failing the stats request.
func collectSystem() models.SystemStats {
	var stats models.SystemStats

	if pcts, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(pcts) > 0 {
		stats.CPUUsage = pcts[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemUsage = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err == nil {
		stats.DiskUsage = du.UsedPercent
	}

	return stats
}
