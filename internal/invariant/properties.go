package invariant

// Properties derives the classification flags the catalog stores alongside
// each function.
func Properties(tt []uint32, n int) (map[string]any, error) {
	uniformity, err := DifferentialUniformity{}.Compute(tt, n)
	if err != nil {
		return nil, err
	}
	degree, err := AlgebraicDegree{}.Compute(tt, n)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"is_apn":         uniformity.(int) == 2,
		"is_quadratic":   degree.(int) <= 2,
		"is_permutation": IsPermutation(tt),
	}, nil
}

// ComputeAll runs every registered computer against the table and returns
// the invariant values keyed by name.
func ComputeAll(r *Registry, tt []uint32, n int) (map[string]any, error) {
	out := make(map[string]any)
	for _, name := range r.Names() {
		c, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		v, err := c.Compute(tt, n)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
