package render

// ramp runs from empty to full ink.
var ramp = []rune(" .:-=+*#%@")

// Luminance is the Rec. 601 weighted brightness of a cell, capped at 1.
func Luminance(r, g, b float32) float32 {
	l := 0.299*r + 0.587*g + 0.114*b
	switch {
	case !(l > 0):
		return 0
	case l > 1:
		return 1
	}
	return l
}

// Shade picks a character whose visual weight follows the cell brightness.
func Shade(r, g, b float32) rune {
	l := Luminance(r, g, b)
	i := int(l * float32(len(ramp)-1))
	return ramp[i]
}
