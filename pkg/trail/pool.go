package trail

// Transform 槽位当前的视觉变换
//
// X/Y 是相对于容器左上角的平移，缩放以槽位中心为原点。
type Transform struct {
	Opacity float64
	Scale   float64
	X, Y    float64
	Z       int
}

// DefaultTransform 槽位的默认变换：不可见、原始大小、无偏移
func DefaultTransform() Transform {
	return Transform{Opacity: 0, Scale: 1}
}

// Slot 图片池中的一个可复用槽位
type Slot struct {
	Index  int
	Source string // 图片标识（路径或 URL）

	// Size 布局时测得的包围盒；Measured 为 false 时视为 0×0
	Size     Size
	Measured bool

	Transform Transform
}

// MeasureFunc 测量槽位包围盒
// 返回 ok=false 表示该槽位的元素不存在（例如图片加载失败）
type MeasureFunc func(index int) (size Size, ok bool)

// TransformApplier 将变换写入某个槽位
// 动画驱动只通过这个能力修改视觉状态，不持有任何渲染句柄
type TransformApplier interface {
	ApplyTransform(index int, t Transform)
}

// Pool 固定大小、有序的图片槽位序列
//
// Pool 只保存纯数据；槽位在挂载时创建，整个生命周期内循环复用，不会单独销毁。
type Pool struct {
	slots []Slot
}

// NewPool 为每个图片标识创建一个槽位
func NewPool(sources []string) *Pool {
	p := &Pool{slots: make([]Slot, len(sources))}
	for i, src := range sources {
		p.slots[i] = Slot{
			Index:     i,
			Source:    src,
			Transform: DefaultTransform(),
		}
	}
	return p
}

// Len 槽位数量
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Slot 返回第 i 个槽位的副本
func (p *Pool) Slot(i int) (Slot, bool) {
	if i < 0 || i >= p.Len() {
		return Slot{}, false
	}
	return p.slots[i], true
}

// Slots 返回所有槽位的副本
func (p *Pool) Slots() []Slot {
	out := make([]Slot, p.Len())
	copy(out, p.slots)
	return out
}

// SizeOf 返回槽位尺寸；未测量或越界时返回零尺寸
func (p *Pool) SizeOf(i int) Size {
	s, ok := p.Slot(i)
	if !ok || !s.Measured {
		return Size{}
	}
	return s.Size
}

// ApplyTransform 实现 TransformApplier
func (p *Pool) ApplyTransform(i int, t Transform) {
	if i < 0 || i >= p.Len() {
		return
	}
	p.slots[i].Transform = t
}

// Measure 重新计算所有槽位的包围盒
// 找不到元素的槽位被跳过，尺寸清零
func (p *Pool) Measure(measure MeasureFunc) {
	for i := range p.slots {
		if measure == nil {
			p.slots[i].Size, p.slots[i].Measured = Size{}, false
			continue
		}
		size, ok := measure(i)
		if !ok {
			p.slots[i].Size, p.slots[i].Measured = Size{}, false
			continue
		}
		p.slots[i].Size, p.slots[i].Measured = size, true
	}
}

// ResetTransforms 将所有槽位恢复为默认变换（不论是否在动画中）
func (p *Pool) ResetTransforms() {
	for i := range p.slots {
		p.slots[i].Transform = DefaultTransform()
	}
}
