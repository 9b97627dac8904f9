package diagnostics

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// GPUInfo names one graphics card.
type GPUInfo struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// HostMetrics is one sample of host and process resource usage.
type HostMetrics struct {
	CollectedAt time.Time `json:"collected_at" yaml:"collected_at"`
	Hostname    string    `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	GOOS        string    `json:"goos" yaml:"goos"`
	GOARCH      string    `json:"goarch" yaml:"goarch"`
	GoVersion   string    `json:"go_version" yaml:"go_version"`

	// CPU
	CPUModel   string  `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	CPUCores   int     `json:"cpu_cores" yaml:"cpu_cores"`
	CPUThreads int     `json:"cpu_threads" yaml:"cpu_threads"`
	CPUPercent float64 `json:"cpu_percent" yaml:"cpu_percent"`

	// Memory (in MB)
	MemTotalMB float64 `json:"mem_total_mb" yaml:"mem_total_mb"`
	MemUsedMB  float64 `json:"mem_used_mb" yaml:"mem_used_mb"`
	MemPercent float64 `json:"mem_percent" yaml:"mem_percent"`

	// Disk (in GB)
	DiskTotalGB float64 `json:"disk_total_gb" yaml:"disk_total_gb"`
	DiskUsedGB  float64 `json:"disk_used_gb" yaml:"disk_used_gb"`
	DiskPercent float64 `json:"disk_percent" yaml:"disk_percent"`

	// Load average (Unix)
	LoadAvg1  float64 `json:"load_avg_1" yaml:"load_avg_1"`
	LoadAvg5  float64 `json:"load_avg_5" yaml:"load_avg_5"`
	LoadAvg15 float64 `json:"load_avg_15" yaml:"load_avg_15"`

	GPUs []GPUInfo `json:"gpus,omitempty" yaml:"gpus,omitempty"`

	// Process
	Goroutines int     `json:"goroutines" yaml:"goroutines"`
	HeapMB     float64 `json:"heap_mb" yaml:"heap_mb"`
}

// Probes are the host readers used by a Collector. A nil probe is skipped.
type Probes struct {
	Memory   func() (*mem.VirtualMemoryStat, error)
	CPUTimes func() ([]cpu.TimesStat, error)
	CPUInfo  func() ([]cpu.InfoStat, error)
	CPUCount func(logical bool) (int, error)
	Load     func() (*load.AvgStat, error)
	Disk     func(path string) (*disk.UsageStat, error)
	GPU      func() ([]GPUInfo, error)
}

// DefaultProbes reads the real host through gopsutil and ghw.
func DefaultProbes() Probes {
	return Probes{
		Memory:   mem.VirtualMemory,
		CPUTimes: func() ([]cpu.TimesStat, error) { return cpu.Times(false) },
		CPUInfo:  cpu.Info,
		CPUCount: cpu.Counts,
		Load:     load.Avg,
		Disk:     disk.Usage,
		GPU:      ghwGPUs,
	}
}

// gpuTTL bounds how often graphics cards are enumerated.
const gpuTTL = time.Minute

// Collector samples HostMetrics.
type Collector struct {
	probes Probes
	now    func() time.Time

	mu           sync.Mutex
	lastCPUTotal float64
	lastCPUIdle  float64

	infoCollected bool
	cpuModel      string
	cpuCores      int
	cpuThreads    int

	gpuAt    time.Time
	gpuCache []GPUInfo
}

// NewCollector creates a collector reading the real host.
func NewCollector() *Collector {
	return NewCollectorWithProbes(DefaultProbes(), time.Now)
}

// NewCollectorWithProbes creates a collector over custom probes.
func NewCollectorWithProbes(p Probes, now func() time.Time) *Collector {
	if now == nil {
		now = time.Now
	}
	return &Collector{probes: p, now: now}
}

// Collect takes one sample. Probe failures leave the affected fields zero.
// CPUPercent is measured between consecutive calls and is zero on the
// first one.
func (c *Collector) Collect() HostMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := HostMetrics{
		CollectedAt: c.now(),
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		GoVersion:   runtime.Version(),
		Goroutines:  runtime.NumGoroutine(),
	}
	if host, err := os.Hostname(); err == nil {
		m.Hostname = host
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapMB = float64(ms.HeapAlloc) / 1024 / 1024

	c.collectHardware(&m)
	c.collectMemory(&m)
	c.collectCPU(&m)
	c.collectDisk(&m)
	c.collectLoad(&m)
	c.collectGPU(&m)
	return m
}

func (c *Collector) collectHardware(m *HostMetrics) {
	if !c.infoCollected {
		if c.probes.CPUInfo != nil {
			if infos, err := c.probes.CPUInfo(); err == nil && len(infos) > 0 {
				c.cpuModel = strings.TrimSpace(infos[0].ModelName)
			}
		}
		if c.probes.CPUCount != nil {
			if cores, err := c.probes.CPUCount(false); err == nil && cores > 0 {
				c.cpuCores = cores
			}
			if threads, err := c.probes.CPUCount(true); err == nil && threads > 0 {
				c.cpuThreads = threads
			}
		}
		c.infoCollected = true
	}
	m.CPUModel = c.cpuModel
	m.CPUCores = c.cpuCores
	m.CPUThreads = c.cpuThreads
}

func (c *Collector) collectMemory(m *HostMetrics) {
	if c.probes.Memory == nil {
		return
	}
	vm, err := c.probes.Memory()
	if err != nil || vm == nil {
		return
	}
	m.MemTotalMB = float64(vm.Total) / 1024 / 1024
	m.MemUsedMB = float64(vm.Used) / 1024 / 1024
	m.MemPercent = vm.UsedPercent
}

func (c *Collector) collectCPU(m *HostMetrics) {
	if c.probes.CPUTimes == nil {
		return
	}
	times, err := c.probes.CPUTimes()
	if err != nil || len(times) == 0 {
		return
	}
	t := times[0]
	total := t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
	idle := t.Idle + t.Iowait

	if c.lastCPUTotal > 0 {
		totalDelta := total - c.lastCPUTotal
		idleDelta := idle - c.lastCPUIdle
		if totalDelta > 0 {
			m.CPUPercent = (1 - idleDelta/totalDelta) * 100
		}
	}
	c.lastCPUTotal = total
	c.lastCPUIdle = idle
}

func (c *Collector) collectDisk(m *HostMetrics) {
	if c.probes.Disk == nil {
		return
	}
	usage, err := c.probes.Disk(rootDiskPath())
	if err != nil || usage == nil {
		return
	}
	m.DiskTotalGB = float64(usage.Total) / 1024 / 1024 / 1024
	m.DiskUsedGB = float64(usage.Used) / 1024 / 1024 / 1024
	m.DiskPercent = usage.UsedPercent
}

func (c *Collector) collectLoad(m *HostMetrics) {
	if c.probes.Load == nil {
		return
	}
	avg, err := c.probes.Load()
	if err != nil || avg == nil {
		return
	}
	m.LoadAvg1 = avg.Load1
	m.LoadAvg5 = avg.Load5
	m.LoadAvg15 = avg.Load15
}

func (c *Collector) collectGPU(m *HostMetrics) {
	if c.probes.GPU == nil {
		return
	}
	now := c.now()
	if c.gpuCache == nil || now.Sub(c.gpuAt) >= gpuTTL {
		gpus, err := c.probes.GPU()
		if err != nil {
			gpus = []GPUInfo{}
		}
		c.gpuCache = gpus
		c.gpuAt = now
	}
	m.GPUs = append([]GPUInfo(nil), c.gpuCache...)
}

func ghwGPUs() ([]GPUInfo, error) {
	info, err := ghw.GPU()
	if err != nil {
		return nil, fmt.Errorf("reading gpu info: %w", err)
	}
	if info == nil {
		return []GPUInfo{}, nil
	}
	gpus := make([]GPUInfo, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		name := ""
		if card.DeviceInfo != nil {
			switch {
			case card.DeviceInfo.Vendor != nil && card.DeviceInfo.Product != nil:
				name = strings.TrimSpace(card.DeviceInfo.Vendor.Name + " " + card.DeviceInfo.Product.Name)
			case card.DeviceInfo.Product != nil:
				name = strings.TrimSpace(card.DeviceInfo.Product.Name)
			case card.DeviceInfo.Vendor != nil:
				name = strings.TrimSpace(card.DeviceInfo.Vendor.Name)
			}
		}
		if name == "" {
			name = fmt.Sprintf("GPU %d", card.Index)
		}
		gpus = append(gpus, GPUInfo{Index: card.Index, Name: name})
	}
	return gpus, nil
}

func rootDiskPath() string {
	if runtime.GOOS == "windows" {
		drive := os.Getenv("SystemDrive")
		if drive == "" {
			drive = "C:"
		}
		return drive + "\\"
	}
	return "/"
}
