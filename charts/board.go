package charts

import (
	"fmt"
	"sort"
	"sync"
)

// Chart 已创建的图表实例，重新创建前必须先 Destroy
type Chart interface {
	Spec() Spec
	Destroy()
}

// Renderer 图表渲染器
type Renderer interface {
	Render(spec Spec) (Chart, error)
}

// liveSet 当前存活的实例，Board 与 TerminalBoard 共用
type liveSet struct {
	mu     sync.Mutex
	seq    int
	charts map[int]Spec
}

func (s *liveSet) add(spec Spec) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.charts == nil {
		s.charts = make(map[int]Spec)
	}
	s.seq++
	s.charts[s.seq] = spec
	return s.seq
}

func (s *liveSet) remove(id int) {
	s.mu.Lock()
	delete(s.charts, id)
	s.mu.Unlock()
}

// list 按槽位顺序返回，同槽位按创建顺序
func (s *liveSet) list() []Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.charts))
	for id := range s.charts {
		ids = append(ids, id)
	}
	order := make(map[Slot]int)
	for i, slot := range Slots() {
		order[slot] = i
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.charts[ids[i]], s.charts[ids[j]]
		if order[a.Slot] != order[b.Slot] {
			return order[a.Slot] < order[b.Slot]
		}
		return ids[i] < ids[j]
	})
	out := make([]Spec, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.charts[id])
	}
	return out
}

type handle struct {
	set  *liveSet
	id   int
	spec Spec
	once sync.Once
}

func (h *handle) Spec() Spec {
	return h.spec
}

func (h *handle) Destroy() {
	h.once.Do(func() { h.set.remove(h.id) })
}

// Board 保存图表描述，供网页前端用图表库绘制
type Board struct {
	live liveSet
}

// NewBoard 创建空白面板
func NewBoard() *Board {
	return &Board{}
}

// Render 登记新实例
func (b *Board) Render(spec Spec) (Chart, error) {
	if spec.Slot == "" {
		return nil, fmt.Errorf("charts: spec without slot")
	}
	return &handle{set: &b.live, id: b.live.add(spec), spec: spec}, nil
}

// Charts 当前存活的图表
func (b *Board) Charts() []Spec {
	return b.live.list()
}
