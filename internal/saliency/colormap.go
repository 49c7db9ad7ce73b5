package saliency

// jetColor переводит значение [0,255] в цвет палитры jet:
// синий — низкая значимость, красный — высокая.
func jetColor(v uint8) (r, g, b uint8) {
	x := float64(v) / 255
	return jetChannel(1.5 - abs(4*x-3)),
		jetChannel(1.5 - abs(4*x-2)),
		jetChannel(1.5 - abs(4*x-1))
}

func jetChannel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
