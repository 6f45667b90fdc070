package entity

// Build 当前装机方案：每种组件最多一个槽位
type Build struct {
	CPU         *CPU         `json:"cpu"`
	Motherboard *Motherboard `json:"motherboard"`
	GPU         *GPU         `json:"gpu"`
	RAM         *RAM         `json:"ram"`
	PSU         *PSU         `json:"psu"`
	Case        *Case        `json:"case"`
	Cooler      *Cooler      `json:"cooler"`
}

// slot accessors, indexed by Kind
type slot struct {
	get   func(b *Build) Component
	set   func(b *Build, c Component)
	clear func(b *Build)
}

var slots = [...]slot{
	KindCPU: {
		get: func(b *Build) Component {
			if b.CPU == nil {
				return nil
			}
			return b.CPU
		},
		set:   func(b *Build, c Component) { b.CPU = c.(*CPU) },
		clear: func(b *Build) { b.CPU = nil },
	},
	KindMotherboard: {
		get: func(b *Build) Component {
			if b.Motherboard == nil {
				return nil
			}
			return b.Motherboard
		},
		set:   func(b *Build, c Component) { b.Motherboard = c.(*Motherboard) },
		clear: func(b *Build) { b.Motherboard = nil },
	},
	KindGPU: {
		get: func(b *Build) Component {
			if b.GPU == nil {
				return nil
			}
			return b.GPU
		},
		set:   func(b *Build, c Component) { b.GPU = c.(*GPU) },
		clear: func(b *Build) { b.GPU = nil },
	},
	KindRAM: {
		get: func(b *Build) Component {
			if b.RAM == nil {
				return nil
			}
			return b.RAM
		},
		set:   func(b *Build, c Component) { b.RAM = c.(*RAM) },
		clear: func(b *Build) { b.RAM = nil },
	},
	KindPSU: {
		get: func(b *Build) Component {
			if b.PSU == nil {
				return nil
			}
			return b.PSU
		},
		set:   func(b *Build, c Component) { b.PSU = c.(*PSU) },
		clear: func(b *Build) { b.PSU = nil },
	},
	KindCase: {
		get: func(b *Build) Component {
			if b.Case == nil {
				return nil
			}
			return b.Case
		},
		set:   func(b *Build, c Component) { b.Case = c.(*Case) },
		clear: func(b *Build) { b.Case = nil },
	},
	KindCooler: {
		get: func(b *Build) Component {
			if b.Cooler == nil {
				return nil
			}
			return b.Cooler
		},
		set:   func(b *Build, c Component) { b.Cooler = c.(*Cooler) },
		clear: func(b *Build) { b.Cooler = nil },
	},
}

// Get returns the component in the kind's slot, or nil.
func (b Build) Get(k Kind) Component {
	if !k.Valid() {
		return nil
	}
	return slots[k].get(&b)
}

// Has reports whether the kind's slot is occupied.
func (b Build) Has(k Kind) bool {
	return b.Get(k) != nil
}

// With returns a copy of the build with c placed in its slot, replacing any
// previous occupant. A nil component leaves the build unchanged.
func (b Build) With(c Component) Build {
	if c == nil || !c.Kind().Valid() {
		return b
	}
	slots[c.Kind()].set(&b, c)
	return b
}

// Without returns a copy of the build with the kind's slot emptied.
func (b Build) Without(k Kind) Build {
	if k.Valid() {
		slots[k].clear(&b)
	}
	return b
}

// IsEmpty reports whether every slot is absent.
func (b Build) IsEmpty() bool {
	for _, k := range AllKinds {
		if b.Has(k) {
			return false
		}
	}
	return true
}

// Components returns the selected components in slot order.
func (b Build) Components() []Component {
	var out []Component
	for _, k := range AllKinds {
		if c := b.Get(k); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// TotalPrice 计算已选组件总价
func (b Build) TotalPrice() float64 {
	total := 0.0
	for _, c := range b.Components() {
		total += c.Info().PriceUSD
	}
	return total
}

// MissingKinds lists the empty slots in slot order.
func (b Build) MissingKinds() []Kind {
	missing := []Kind{}
	for _, k := range AllKinds {
		if !b.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// IsComplete 所有槽位是否都已选择
func (b Build) IsComplete() bool {
	return len(b.MissingKinds()) == 0
}
