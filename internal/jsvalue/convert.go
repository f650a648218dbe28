package jsvalue

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
)

// From converts caller input into a Value tree.
//
// Accepted input: nil, Value, bool, string, every integer and float kind,
// json.Number, Map, yaml.MapSlice, maps with string keys, slices, arrays and
// pointers to any of these. Named types are accepted by underlying kind.
// Anything else returns ErrUnsupportedKind naming the offending path, as does
// nesting deeper than MaxDepth (cyclic input ends up there).
func From(v any) (Value, error) {
	return from(v, "$", 0)
}

// MaxDepth bounds the nesting of arrays and objects accepted by From and
// Serialize.
const MaxDepth = 1000

func tooDeep(path string) error {
	return fmt.Errorf("%w: nesting deeper than %d at %s", ErrUnsupportedKind, MaxDepth, path)
}

func from(v any, path string, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, tooDeep(path)
	}
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Object:
		return fromObject(x, path, depth)
	case Array:
		return fromArray(x, path, depth)
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint64:
		return Uint(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return fromFloat32(x), nil
	case json.Number:
		return fromNumber(x, path)
	case Map:
		return fromMap(x, path, depth)
	case yaml.MapSlice:
		return fromMapSlice(x, path, depth)
	case []any:
		arr := make(Array, len(x))
		for i, item := range x {
			val, err := from(item, indexPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = val
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, len(keys))
		for i, k := range keys {
			val, err := from(x[k], keyPath(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			obj[i] = Member{Key: k, Value: val}
		}
		return obj, nil
	}
	return fromReflect(reflect.ValueOf(v), path, depth)
}

// fromReflect handles named types, typed slices and typed maps.
func fromReflect(rv reflect.Value, path string, depth int) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return fromFloat32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return from(rv.Elem().Interface(), path, depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return Array{}, nil
		}
		fallthrough
	case reflect.Array:
		arr := make(Array, rv.Len())
		for i := range arr {
			val, err := from(rv.Index(i).Interface(), indexPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = val
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s at %s (map keys must be strings)", ErrUnsupportedKind, rv.Type(), path)
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		obj := make(Object, len(keys))
		for i, k := range keys {
			val, err := from(rv.MapIndex(k).Interface(), keyPath(path, k.String()), depth+1)
			if err != nil {
				return nil, err
			}
			obj[i] = Member{Key: k.String(), Value: val}
		}
		return obj, nil
	case reflect.Invalid:
		return Null{}, nil
	}
	return nil, fmt.Errorf("%w: %s at %s", ErrUnsupportedKind, rv.Type(), path)
}

func fromMap(m Map, path string, depth int) (Value, error) {
	obj := make(Object, len(m))
	seen := make(map[string]struct{}, len(m))
	for i, p := range m {
		if _, dup := seen[p.Key]; dup {
			return nil, fmt.Errorf("%w: %q at %s", ErrDuplicateKey, p.Key, path)
		}
		seen[p.Key] = struct{}{}
		val, err := from(p.Value, keyPath(path, p.Key), depth+1)
		if err != nil {
			return nil, err
		}
		obj[i] = Member{Key: p.Key, Value: val}
	}
	return obj, nil
}

func fromMapSlice(ms yaml.MapSlice, path string, depth int) (Value, error) {
	m := make(Map, len(ms))
	for i, item := range ms {
		key, err := mapSliceKey(item.Key, path)
		if err != nil {
			return nil, err
		}
		m[i] = Pair{Key: key, Value: item.Value}
	}
	return fromMap(m, path, depth)
}

// mapSliceKey stringifies YAML scalar keys; JavaScript object keys are strings anyway.
func mapSliceKey(k any, path string) (string, error) {
	switch key := k.(type) {
	case string:
		return key, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(key), nil
	}
	return "", fmt.Errorf("%w: %T key at %s", ErrUnsupportedKind, k, path)
}

// fromObject rebuilds an Object so nested Go input is normalized too.
func fromObject(o Object, path string, depth int) (Value, error) {
	out := make(Object, len(o))
	seen := make(map[string]struct{}, len(o))
	for i, m := range o {
		if _, dup := seen[m.Key]; dup {
			return nil, fmt.Errorf("%w: %q at %s", ErrDuplicateKey, m.Key, path)
		}
		seen[m.Key] = struct{}{}
		val, err := from(m.Value, keyPath(path, m.Key), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = Member{Key: m.Key, Value: val}
	}
	return out, nil
}

func fromArray(a Array, path string, depth int) (Value, error) {
	out := make(Array, len(a))
	for i, item := range a {
		val, err := from(item, indexPath(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func fromNumber(n json.Number, path string) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed number %q at %s", ErrUnsupportedKind, n, path)
	}
	return Float(f), nil
}

// fromFloat32 keeps the shortest float32 representation (0.1 stays 0.1).
func fromFloat32(f float32) Value {
	parsed, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return Float(f)
	}
	return Float(parsed)
}

func keyPath(path, key string) string {
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
