package status

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Region 界面上的提示区域
type Region int

const (
	RegionDashboard Region = iota
	RegionGasto
	RegionIngreso
	RegionObjetivo
	RegionCategoria
	RegionFuente
	RegionConfig
	RegionPrestamo
	RegionLogin
	regionCount
)

var regionNames = [regionCount]string{
	RegionDashboard: "statusDashboard",
	RegionGasto:     "statusGasto",
	RegionIngreso:   "statusIngreso",
	RegionObjetivo:  "statusObjetivo",
	RegionCategoria: "statusCategoria",
	RegionFuente:    "statusFuente",
	RegionConfig:    "statusConfig",
	RegionPrestamo:  "statusPrestamo",
	RegionLogin:     "loginError",
}

// Regions 全部区域
func Regions() []Region {
	out := make([]Region, 0, regionCount)
	for r := Region(0); r < regionCount; r++ {
		out = append(out, r)
	}
	return out
}

// ParseRegion 按名称查找区域
func ParseRegion(name string) (Region, bool) {
	for r, n := range regionNames {
		if n == name {
			return Region(r), true
		}
	}
	return 0, false
}

func (r Region) valid() bool {
	return r >= 0 && r < regionCount
}

func (r Region) String() string {
	if !r.valid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionNames[r]
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Level 提示级别
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Icon 级别对应的图标名
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return "check"
	case LevelError:
		return "times"
	case LevelWarning:
		return "exclamation-triangle"
	default:
		return "info"
	}
}

// IconClass Font Awesome 图标类名
func (l Level) IconClass() string {
	return "fas fa-" + l.Icon() + "-circle"
}

// Notice 区域当前显示的内容
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Icon    string    `json:"icon"`
	Visible bool      `json:"visible"`
	At      time.Time `json:"at"`
}

// Reporter 按区域保存提示，每次 Report 覆盖该区域的上一条内容
type Reporter struct {
	mu      sync.RWMutex
	notices [regionCount]Notice
	logger  *logrus.Logger
	now     func() time.Time
}

// NewReporter 创建提示器，logger 为 nil 时使用 logrus 标准实例
func NewReporter(logger *logrus.Logger) *Reporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reporter{logger: logger, now: time.Now}
}

// Report 显示提示；未知区域只记录日志，不会 panic
func (r *Reporter) Report(region Region, level Level, message string) {
	if message == "" && level == LevelError {
		message = "Error desconocido"
	}
	if level.Icon() == "info" && level != LevelInfo {
		level = LevelInfo
	}

	entry := r.logger.WithFields(logrus.Fields{"region": region.String(), "level": string(level)})
	switch level {
	case LevelError:
		entry.Warn(message)
	case LevelWarning:
		entry.Info(message)
	default:
		entry.Debug(message)
	}

	if !region.valid() {
		return
	}
	r.mu.Lock()
	r.notices[region] = Notice{
		Level:   level,
		Message: message,
		Icon:    level.IconClass(),
		Visible: true,
		At:      r.now(),
	}
	r.mu.Unlock()
}

// Clear 隐藏区域
func (r *Reporter) Clear(region Region) {
	if !region.valid() {
		return
	}
	r.mu.Lock()
	r.notices[region] = Notice{}
	r.mu.Unlock()
}

// Get 区域当前内容
func (r *Reporter) Get(region Region) Notice {
	if !region.valid() {
		return Notice{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notices[region]
}

// Snapshot 所有可见区域
func (r *Reporter) Snapshot() map[Region]Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Region]Notice)
	for i, n := range r.notices {
		if n.Visible {
			out[Region(i)] = n
		}
	}
	return out
}

// MarshalJSON 以区域名称为键输出
func (r *Reporter) MarshalJSON() ([]byte, error) {
	snap := r.Snapshot()
	out := make(map[string]Notice, len(snap))
	for region, n := range snap {
		out[region.String()] = n
	}
	return json.Marshal(out)
}
