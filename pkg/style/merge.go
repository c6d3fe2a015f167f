package style

// deepMerge overlays override onto base and returns a fresh tree; neither
// input is mutated. Nested map[string]any values merge recursively, any
// other value in override replaces the base value wholesale.
func deepMerge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		bm, bok := out[k].(map[string]any)
		om, ook := v.(map[string]any)
		if bok && ook {
			out[k] = deepMerge(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}
