package engine

// patch copies next into live element by element, growing live by append
// and shrinking it by truncation so its backing array survives.
func patch[T any](live, next []T) []T {
	n := min(len(live), len(next))
	copy(live[:n], next[:n])
	if len(next) > len(live) {
		return append(live, next[n:]...)
	}
	clear(live[len(next):])
	return live[:len(next)]
}

// ApplyDiff transfers next onto the live configuration in place. Datasets are
// matched by ID: matched ones are updated first, then unmatched live ones are
// dropped, then new ones are inserted at their position in next. Matched
// dataset pointers and their slices keep their identity.
func ApplyDiff(live, next *Config) {
	live.Type = next.Type
	live.Horizontal = next.Horizontal
	live.Collapsed = next.Collapsed
	live.Plugins = next.Plugins
	live.Labels = patch(live.Labels, next.Labels)
	for len(live.HiddenSegments) < len(next.Labels) {
		live.HiddenSegments = append(live.HiddenSegments, false)
	}
	live.HiddenSegments = live.HiddenSegments[:len(next.Labels)]
	live.Scales = patchScales(live.Scales, next.Scales)

	byID := make(map[string]*Dataset, len(live.Datasets))
	for _, ds := range live.Datasets {
		byID[ds.ID] = ds
	}
	matched := make(map[string]bool, len(next.Datasets))
	for _, nd := range next.Datasets {
		if ld, ok := byID[nd.ID]; ok {
			updateDataset(ld, nd)
			matched[nd.ID] = true
		}
	}
	kept := live.Datasets[:0]
	for _, ld := range live.Datasets {
		if matched[ld.ID] {
			kept = append(kept, ld)
		}
	}
	clear(live.Datasets[len(kept):])
	live.Datasets = kept
	for i, nd := range next.Datasets {
		if matched[nd.ID] {
			continue
		}
		i = min(i, len(live.Datasets))
		live.Datasets = append(live.Datasets, nil)
		copy(live.Datasets[i+1:], live.Datasets[i:])
		live.Datasets[i] = nd
	}
	// Matched datasets follow the order of next.
	order := make(map[string]int, len(next.Datasets))
	for i, nd := range next.Datasets {
		order[nd.ID] = i
	}
	for i := 1; i < len(live.Datasets); i++ {
		for j := i; j > 0 && order[live.Datasets[j].ID] < order[live.Datasets[j-1].ID]; j-- {
			live.Datasets[j], live.Datasets[j-1] = live.Datasets[j-1], live.Datasets[j]
		}
	}
}

// updateDataset copies every field but Hidden, which belongs to the legend.
func updateDataset(live, next *Dataset) {
	live.Label = next.Label
	live.Type = next.Type
	live.YAxisID = next.YAxisID
	live.LegendColor = next.LegendColor
	live.Data = patch(live.Data, next.Data)
	live.Points = patch(live.Points, next.Points)
	live.BackgroundColor = patch(live.BackgroundColor, next.BackgroundColor)
	live.BorderColor = patch(live.BorderColor, next.BorderColor)
	live.HoverBackgroundColor = patch(live.HoverBackgroundColor, next.HoverBackgroundColor)
	live.HoverBorderColor = patch(live.HoverBorderColor, next.HoverBorderColor)
	live.CheckedBackgroundColor = patch(live.CheckedBackgroundColor, next.CheckedBackgroundColor)
	live.UncheckedBackgroundColor = patch(live.UncheckedBackgroundColor, next.UncheckedBackgroundColor)
}

func patchScales(live, next []*Scale) []*Scale {
	out := make([]*Scale, 0, len(next))
	for _, ns := range next {
		var ls *Scale
		for _, s := range live {
			if s.ID == ns.ID {
				ls = s
				break
			}
		}
		if ls == nil {
			out = append(out, ns)
			continue
		}
		*ls = *ns
		out = append(out, ls)
	}
	return out
}
