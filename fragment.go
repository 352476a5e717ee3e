package main

import "image/color"

// FragmentRule colors a covered pixel from its screen position. x and y are
// pixel-center coordinates with the origin at the bottom-left, as a fragment
// shader sees them.
type FragmentRule func(x, y, width, height float64) color.RGBA

const (
	RuleGradient = "gradient"
	RuleMono     = "mono"
	RuleInverse  = "inverse"
)

// GradientRule maps x to green and y to blue over a black red channel.
func GradientRule(x, y, width, height float64) color.RGBA {
	return color.RGBA{
		R: 0,
		G: unitToByte(x / width),
		B: unitToByte(y / height),
		A: 0xff,
	}
}

func MonoRule(_, _, _, _ float64) color.RGBA {
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// InverseRule is GradientRule mirrored through the screen center.
func InverseRule(x, y, width, height float64) color.RGBA {
	return GradientRule(width-x, height-y, width, height)
}

// FragmentRuleByName resolves the color.rule config value.
func FragmentRuleByName(name string) (FragmentRule, error) {
	switch name {
	case "", RuleGradient:
		return GradientRule, nil
	case RuleMono:
		return MonoRule, nil
	case RuleInverse:
		return InverseRule, nil
	}
	return nil, &ConfigError{Field: "color.rule", Value: name, Reason: "unknown fragment rule"}
}

func unitToByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
