package variants

// Selection is the mutable in-progress state while configuring one dish
// instance: a mapping from variant group type to the chosen option labels.
// Single-select groups hold at most one entry. For mixed dishes each
// preparation keeps its own Selection.
type Selection map[string][]string

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Options returns the chosen option labels for the given group type.
func (s Selection) Options(groupType string) []string {
	return s[groupType]
}

// Has reports whether the given option label is chosen in any group.
func (s Selection) Has(option string) bool {
	for _, chosen := range s {
		for _, o := range chosen {
			if o == option {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether no options are chosen in any group.
func (s Selection) IsEmpty() bool {
	for _, chosen := range s {
		if len(chosen) > 0 {
			return false
		}
	}
	return true
}

// Flatten returns every chosen option across all groups in the given group
// order. Options within a multi-select group follow the group's declared
// option order, not the order they were toggled in.
func (s Selection) Flatten(groupOrder []string, optionOrder func(groupType string) []string) []string {
	var out []string
	for _, gt := range groupOrder {
		chosen := s[gt]
		if len(chosen) == 0 {
			continue
		}
		if len(chosen) == 1 {
			out = append(out, chosen[0])
			continue
		}
		picked := make(map[string]bool, len(chosen))
		for _, o := range chosen {
			picked[o] = true
		}
		for _, o := range optionOrder(gt) {
			if picked[o] {
				out = append(out, o)
			}
		}
	}
	return out
}

// clone returns a shallow-independent copy of the selection.
func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for gt, chosen := range s {
		out[gt] = append([]string(nil), chosen...)
	}
	return out
}
