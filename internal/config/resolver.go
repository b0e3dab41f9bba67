package config

// ResolvedVariable is the single authoritative answer for one variable.
// WinningLayer is the highest-precedence member of PresentIn; Conflicting is
// true exactly when more than one layer defines the variable, regardless of
// whether the values agree (identical values across layers are still worth
// surfacing as redundant).
type ResolvedVariable struct {
	Name         VariableName
	Value        string
	WinningLayer Layer
	PresentIn    []Layer
	Conflicting  bool
}

// Present reports whether any layer defined the variable.
func (v ResolvedVariable) Present() bool {
	return len(v.PresentIn) > 0
}

// Resolve picks the winning value for name out of the per-layer values
// collected by a Reader. It is a pure function of its inputs: map presence
// means the layer defines the variable, even with an empty value. Names
// outside the catalogue resolve to the absent result.
func Resolve(name VariableName, perLayer map[Layer]string) ResolvedVariable {
	resolved := ResolvedVariable{Name: name}
	if !IsRecognized(name) {
		return resolved
	}
	for _, layer := range Precedence {
		value, ok := perLayer[layer]
		if !ok {
			continue
		}
		if len(resolved.PresentIn) == 0 {
			resolved.Value = value
			resolved.WinningLayer = layer
		}
		resolved.PresentIn = append(resolved.PresentIn, layer)
	}
	resolved.Conflicting = len(resolved.PresentIn) > 1
	return resolved
}

// ResolveAll resolves every catalogue variable through one reader pass.
func ResolveAll(r *Reader) []ResolvedVariable {
	catalogue := Catalogue()
	resolved := make([]ResolvedVariable, 0, len(catalogue))
	for _, name := range catalogue {
		resolved = append(resolved, Resolve(name, r.AllLayerValues(name)))
	}
	return resolved
}
