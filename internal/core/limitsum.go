package core

const sumEpsilon = 1e-9

// LimitSum caps the sum of the cells' values at max. Over-subscription is
// corrected by taking from the cells at the end of the list first, skipping
// the just-edited index and cells already at zero; any residue left after
// that comes out of the edited cell itself. Under-subscription is legal and
// never corrected. Pass edited=-1 when no single edit caused the recompute.
// It reports whether any cell changed.
func LimitSum(cells []*Cell, max float64, edited int) bool {
	if len(cells) == 0 {
		return false
	}
	if len(cells) == 1 {
		if cells[0].Value() > max+sumEpsilon {
			return cells[0].Set(max)
		}
		return false
	}

	sum := 0.0
	for _, c := range cells {
		sum += c.Value()
	}
	excess := sum - max
	if excess <= sumEpsilon {
		return false
	}

	changed := false
	for i := len(cells) - 1; i >= 0 && excess > sumEpsilon; i-- {
		if i == edited {
			continue
		}
		v := cells[i].Value()
		if v <= 0 {
			continue
		}
		take := v
		if take > excess {
			take = excess
		}
		if cells[i].Set(v - take) {
			changed = true
		}
		excess -= take
	}
	if excess > sumEpsilon && edited >= 0 && edited < len(cells) {
		v := cells[edited].Value()
		take := v
		if take > excess {
			take = excess
		}
		if take > 0 && cells[edited].Set(v-take) {
			changed = true
		}
	}
	return changed
}
