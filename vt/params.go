package vt

import "log/slog"

const MAX_EXPECTED_PARAMS = 16

// parameters accumulates the numeric arguments of a CSI sequence as
// they're parsed. Missing values are represented as 0 and defaulted
// at dispatch time.
type parameters struct {
	num   int
	items []int
}

func newParams() *parameters {
	return &parameters{items: make([]int, 0, MAX_EXPECTED_PARAMS)}
}

func paramsFromInts(items []int) *parameters {
	p := newParams()
	for _, i := range items {
		p.addItem(i)
	}
	return p
}

func (p *parameters) addItem(item int) {
	p.items = append(p.items, item)
	p.num += 1
}

func (p *parameters) alterItem(val int) {
	p.items[p.num-1] = val
}

func (p *parameters) reset() {
	p.items = p.items[:0]
	p.num = 0
}

func (p *parameters) numItems() int {
	return p.num
}

// getItem returns the item'th parameter, or def when it was absent.
func (p *parameters) getItem(item, def int) (int, bool) {
	if p.num == 0 || p.num <= item {
		return def, false
	}
	return p.items[item], true
}

func (p *parameters) lastItem() int {
	if p.num == 0 {
		return 0
	}
	return p.items[p.num-1]
}

// consumeItem pops the first parameter. Used for SGR, where extended
// color forms swallow a variable number of arguments.
func (p *parameters) consumeItem() (int, bool) {
	if p.num < 1 {
		slog.Debug("consumed from empty params")
		return 0, false
	}
	n := p.items[0]
	p.num -= 1
	p.items = p.items[1:]
	return n, true
}

func (p *parameters) snapshot() []int {
	out := make([]int, p.num)
	copy(out, p.items[:p.num])
	return out
}
