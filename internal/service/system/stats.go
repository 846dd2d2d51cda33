package system

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats: 헬스 엔드포인트에 노출하는 프로세스/호스트 리소스 지표
type Stats struct {
	CPUPercent   float64 `json:"cpu_percent"`
	MemoryMB     float64 `json:"memory_mb"`
	HostMemoryPC float64 `json:"host_memory_percent"`
	Goroutines   int     `json:"goroutines"`
	UptimeSec    int64   `json:"uptime_sec"`
}

var startedAt = time.Now()

// Collect: 현재 프로세스의 리소스 사용량을 수집한다. 지표 일부 수집 실패는 0으로 남긴다.
func Collect() *Stats {
	stats := &Stats{
		Goroutines: runtime.NumGoroutine(),
		UptimeSec:  int64(time.Since(startedAt).Seconds()),
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpuPercent, err := proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpuPercent
		}
		if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
			stats.MemoryMB = float64(memInfo.RSS) / 1024 / 1024
		}
	}
	if hostMem, err := mem.VirtualMemory(); err == nil && hostMem != nil {
		stats.HostMemoryPC = hostMem.UsedPercent
	}

	return stats
}
