package saliency

import (
	"math"
	"sort"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

// Grid — двумерная карта значений, построчная раскладка.
type Grid struct {
	W, H int
	Pix  []float64
}

// NewGrid создаёт карту заданного размера, заполненную нулями.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float64, w*h)}
}

// At возвращает значение в точке (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.W+x]
}

// Set записывает значение в точку (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.Pix[y*g.W+x] = v
}

// ChannelMaxAbs сворачивает тензор градиента в 2-D карту: модуль значения
// и максимум по каналам. Максимум, а не среднее: важен самый чувствительный
// канал пикселя.
func ChannelMaxAbs(t *entity.ImageTensor) *Grid {
	g := NewGrid(t.Width, t.Height)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			var m float64
			for c := 0; c < t.Channels; c++ {
				v := math.Abs(float64(t.At(y, x, c)))
				if v > m {
					m = v
				}
			}
			g.Set(x, y, m)
		}
	}
	return g
}

// ResizeBilinear возвращает карту, приведённую к размеру w×h билинейной
// интерполяцией.
func (g *Grid) ResizeBilinear(w, h int) *Grid {
	if w == g.W && h == g.H {
		dst := NewGrid(w, h)
		copy(dst.Pix, g.Pix)
		return dst
	}

	dst := NewGrid(w, h)
	scaleX := float64(g.W) / float64(w)
	scaleY := float64(g.H) / float64(h)

	for y := 0; y < h; y++ {
		sy := (float64(y)+0.5)*scaleY - 0.5
		y0 := int(math.Floor(sy))
		fy := sy - float64(y0)
		y1 := y0 + 1
		if y0 < 0 {
			y0, y1, fy = 0, 0, 0
		}
		if y1 >= g.H {
			y1 = g.H - 1
			if y0 > y1 {
				y0 = y1
			}
		}

		for x := 0; x < w; x++ {
			sx := (float64(x)+0.5)*scaleX - 0.5
			x0 := int(math.Floor(sx))
			fx := sx - float64(x0)
			x1 := x0 + 1
			if x0 < 0 {
				x0, x1, fx = 0, 0, 0
			}
			if x1 >= g.W {
				x1 = g.W - 1
				if x0 > x1 {
					x0 = x1
				}
			}

			v := (1-fx)*(1-fy)*g.At(x0, y0) +
				fx*(1-fy)*g.At(x1, y0) +
				(1-fx)*fy*g.At(x0, y1) +
				fx*fy*g.At(x1, y1)
			dst.Set(x, y, v)
		}
	}
	return dst
}

// Mask — булева маска пикселей карты.
type Mask struct {
	W, H  int
	In    []bool
	Count int
}

// Contains сообщает, входит ли точка (x, y) в маску.
func (m *Mask) Contains(x, y int) bool {
	return m.In[y*m.W+x]
}

// CircularMask строит круглую маску с центром в середине карты.
// Радиус = min(cx, cy) − margin: края снимка (например, контур черепа)
// исключаются из оценки значимости.
func CircularMask(w, h, margin int) *Mask {
	cx, cy := w/2, h/2
	r := cx
	if cy < r {
		r = cy
	}
	r -= margin
	if r < 0 {
		r = 0
	}

	m := &Mask{W: w, H: h, In: make([]bool, w*h)}
	rr := r * r
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr {
				m.In[y*w+x] = true
				m.Count++
			}
		}
	}
	return m
}

// ApplyMask обнуляет значения вне маски.
func (g *Grid) ApplyMask(m *Mask) {
	for i, in := range m.In {
		if !in {
			g.Pix[i] = 0
		}
	}
}

// NormalizeInMask нормирует значения внутри маски в [0,1] по min/max самой
// маски: фон вне круга не искажает контраст. Вырожденный градиент
// (max == min) оставляется как есть, деления на ноль не происходит.
func (g *Grid) NormalizeInMask(m *Mask) {
	if m.Count == 0 {
		return
	}

	mn, mx := math.Inf(1), math.Inf(-1)
	for i, in := range m.In {
		if !in {
			continue
		}
		v := g.Pix[i]
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	if mx <= mn {
		return
	}

	d := mx - mn
	for i, in := range m.In {
		if in {
			g.Pix[i] = (g.Pix[i] - mn) / d
		}
	}
}

// PercentileInMask считает p-й перцентиль значений внутри маски
// с линейной интерполяцией между соседними рангами.
func (g *Grid) PercentileInMask(m *Mask, p float64) float64 {
	vals := make([]float64, 0, m.Count)
	for i, in := range m.In {
		if in {
			vals = append(vals, g.Pix[i])
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)

	rank := p / 100 * float64(len(vals)-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= len(vals) {
		return vals[len(vals)-1]
	}
	return vals[lo] + (vals[hi]-vals[lo])*(rank-float64(lo))
}

// ThresholdBelow обнуляет все значения карты ниже порога.
func (g *Grid) ThresholdBelow(th float64) {
	for i, v := range g.Pix {
		if v < th {
			g.Pix[i] = 0
		}
	}
}

// GaussianBlur возвращает карту, размытую ядром ksize×ksize двумя
// сепарабельными проходами. Сигма выводится из размера ядра, границы
// отражаются без повторения крайнего пикселя.
func (g *Grid) GaussianBlur(ksize int) *Grid {
	k := gaussianKernel(ksize)
	half := ksize / 2

	tmp := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum float64
			for i := 0; i < ksize; i++ {
				sx := reflect101(x+i-half, g.W)
				sum += k[i] * g.At(sx, y)
			}
			tmp.Set(x, y, sum)
		}
	}

	dst := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum float64
			for i := 0; i < ksize; i++ {
				sy := reflect101(y+i-half, g.H)
				sum += k[i] * tmp.At(x, sy)
			}
			dst.Set(x, y, sum)
		}
	}
	return dst
}

func gaussianKernel(ksize int) []float64 {
	sigma := 0.3*(float64(ksize-1)*0.5-1) + 0.8
	c := float64(ksize-1) / 2

	k := make([]float64, ksize)
	var sum float64
	for i := range k {
		d := float64(i) - c
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}
