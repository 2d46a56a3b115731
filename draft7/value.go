package draft7

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// Values binds variable names to values for expansion.
//
// Supported value shapes:
//   - nil: the variable is undefined and contributes nothing;
//   - scalars: string, []byte, [fmt.Stringer], bool, integers, floats, anything else is formatted with [fmt.Sprint];
//   - lists: []string, []any or any other slice or array;
//   - maps: [Pairs] keep their order, Go maps are expanded in key order.
type Values map[string]any

// Pair is a key/value pair of a map value.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Pairs is an ordered map value.
type Pairs []Pair

// Map converts the pairs to a map, the last duplicate key wins.
func (ps Pairs) Map() map[string]string {
	if ps == nil {
		return nil
	}
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}
	return m
}

// Get returns the value of the last pair with the key.
func (ps Pairs) Get(key string) (string, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Key == key {
			return ps[i].Value, true
		}
	}
	return "", false
}

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindScalar
	kindList
	kindMap
)

// shape is a value reduced to one of the expandable shapes.
type shape struct {
	kind   valueKind
	scalar string
	list   []string
	pairs  Pairs
}

func shapeOf(v any) shape {
	switch v := v.(type) {
	case nil:
		return shape{}
	case string:
		return shape{kind: kindScalar, scalar: v}
	case []byte:
		return shape{kind: kindScalar, scalar: string(v)}
	case fmt.Stringer:
		if isNilPtr(v) {
			return shape{}
		}
		return shape{kind: kindScalar, scalar: v.String()}
	case bool:
		return shape{kind: kindScalar, scalar: strconv.FormatBool(v)}
	case int:
		return shape{kind: kindScalar, scalar: strconv.Itoa(v)}
	case int64:
		return shape{kind: kindScalar, scalar: strconv.FormatInt(v, 10)}
	case uint64:
		return shape{kind: kindScalar, scalar: strconv.FormatUint(v, 10)}
	case float64:
		return shape{kind: kindScalar, scalar: strconv.FormatFloat(v, 'g', -1, 64)}
	case float32:
		return shape{kind: kindScalar, scalar: strconv.FormatFloat(float64(v), 'g', -1, 32)}
	case []string:
		return shape{kind: kindList, list: v}
	case []any:
		list := make([]string, len(v))
		for i, item := range v {
			list[i] = scalarString(item)
		}
		return shape{kind: kindList, list: list}
	case Pairs:
		return shape{kind: kindMap, pairs: v}
	case []Pair:
		return shape{kind: kindMap, pairs: v}
	case map[string]string:
		return shape{kind: kindMap, pairs: sortedPairs(v, func(s string) string { return s })}
	case map[string]any:
		return shape{kind: kindMap, pairs: sortedPairs(v, scalarString)}
	}
	return reflectShape(reflect.ValueOf(v))
}

func reflectShape(rv reflect.Value) shape {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return shape{}
		}
		return shapeOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return shape{kind: kindList}
		}
		list := make([]string, rv.Len())
		for i := range rv.Len() {
			list[i] = scalarString(rv.Index(i).Interface())
		}
		return shape{kind: kindList, list: list}
	case reflect.Map:
		pairs := make(Pairs, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, Pair{scalarString(iter.Key().Interface()), scalarString(iter.Value().Interface())})
		}
		slices.SortStableFunc(pairs, func(a, b Pair) int { return cmp.Compare(a.Key, b.Key) })
		return shape{kind: kindMap, pairs: pairs}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return shape{kind: kindScalar, scalar: strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return shape{kind: kindScalar, scalar: strconv.FormatUint(rv.Uint(), 10)}
	case reflect.String:
		return shape{kind: kindScalar, scalar: rv.String()}
	default:
		return shape{kind: kindScalar, scalar: fmt.Sprint(rv.Interface())}
	}
}

// scalarString formats an element of a list or a map, nil is an empty string.
func scalarString(v any) string {
	if v == nil {
		return ""
	}
	if s := shapeOf(v); s.kind == kindScalar {
		return s.scalar
	}
	return fmt.Sprint(v)
}

func sortedPairs[V any](m map[string]V, str func(V) string) Pairs {
	if m == nil {
		return nil
	}
	pairs := make(Pairs, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair{k, str(v)})
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmp.Compare(a.Key, b.Key) })
	return pairs
}

func isNilPtr(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
