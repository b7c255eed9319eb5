package chart

// Validate checks the structural shape of d: equal value counts across groups
// and axes, and a color source for every group. Malformed data is expected
// input and is reported as false, never as an error.
func Validate(d *Data, o Options) bool {
	if d == nil || len(d.Groups) == 0 {
		return false
	}
	n := d.Groups[0].Len()
	auto := o.AutoColorEnabled()
	for _, g := range d.Groups {
		if g.Len() != n {
			return false
		}
		if !auto && len(g.Colors) == 0 && g.CSSClass == "" {
			return false
		}
	}
	for _, axis := range d.Axes {
		if len(axis) != n {
			return false
		}
	}
	return true
}
