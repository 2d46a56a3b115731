package draft7

// Processing selects the post-processing of extracted variables.
type Processing uint8

const (
	// ConvertValues converts [Pairs] values to map[string]string, the last duplicate key wins.
	ConvertValues Processing = 1 << iota
	// ConvertResult collapses repeated variable names into one [Var],
	// it keeps the position of the first one and the value of the last one.
	ConvertResult

	// NoProcessing keeps every slot as a separate [Var] and map values as [Pairs].
	NoProcessing Processing = 0
	// DefaultProcessing is ConvertValues and ConvertResult.
	DefaultProcessing = ConvertValues | ConvertResult
)

func (p Processing) Has(flag Processing) bool { return p&flag == flag }

// Var is an extracted variable.
//
// Value is nil when the variable was not matched, otherwise it is one of:
// string, []string, [Pairs] or map[string]string (see [ConvertValues]).
type Var struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Vars is an ordered list of extracted variables.
type Vars []Var

// Get returns the value of the last variable with the name.
func (vs Vars) Get(name string) (any, bool) {
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i].Name == name {
			return vs[i].Value, true
		}
	}
	return nil, false
}

// Names returns the variable names in order.
func (vs Vars) Names() []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}

// Map converts the variables to a map, the last duplicate name wins.
// Unmatched variables are kept with nil values.
func (vs Vars) Map() map[string]any {
	if vs == nil {
		return nil
	}
	m := make(map[string]any, len(vs))
	for _, v := range vs {
		m[v.Name] = v.Value
	}
	return m
}

// Values converts the variables to [Values] suitable for expansion.
func (vs Vars) Values() Values {
	return Values(vs.Map())
}

func (vs Vars) process(proc Processing) Vars {
	if proc.Has(ConvertValues) {
		for i := range vs {
			if ps, ok := vs[i].Value.(Pairs); ok {
				vs[i].Value = ps.Map()
			}
		}
	}
	if proc.Has(ConvertResult) {
		idx := make(map[string]int, len(vs))
		out := vs[:0]
		for _, v := range vs {
			if j, ok := idx[v.Name]; ok {
				out[j].Value = v.Value
				continue
			}
			idx[v.Name] = len(out)
			out = append(out, v)
		}
		vs = out
	}
	return vs
}
