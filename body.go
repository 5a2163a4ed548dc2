package iconik

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DumpPolicy controls which fields a typed payload emits when serialised
// into a request body.
type DumpPolicy struct {
	// ExcludeDefaults omits fields whose value equals the declared default
	// (the `default:` struct tag, or the zero value without one).
	ExcludeDefaults bool

	// ExcludeUnset omits Optional fields the caller never assigned. Required
	// for PATCH bodies so defaults do not clobber server state.
	ExcludeUnset bool
}

// policyForVerb returns the dump policy mandated for typed bodies on the
// given HTTP verb: PATCH additionally excludes unset fields.
func policyForVerb(verb string) DumpPolicy {
	return DumpPolicy{
		ExcludeDefaults: true,
		ExcludeUnset:    verb == http.MethodPatch,
	}
}

// Dump serialises a typed payload into a map suitable for JSON encoding,
// applying the dump policy field by field. v must be a struct or a pointer
// to one; fields follow their `json:` tags and may declare a `default:` tag
// for default comparison.
func Dump(v any, policy DumpPolicy) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil payload", ErrInvalidBody)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrInvalidBody, v)
	}

	out := make(map[string]any)
	if err := dumpStruct(rv, policy, out); err != nil {
		return nil, err
	}
	return out, nil
}

func dumpStruct(rv reflect.Value, policy DumpPolicy, out map[string]any) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := dumpStruct(rv.Field(i), policy, out); err != nil {
				return err
			}
			continue
		}

		name := jsonName(field)
		if name == "" {
			continue
		}
		fv := rv.Field(i)

		if opt, ok := fv.Interface().(presence); ok {
			value, set, null := opt.presenceState()
			switch {
			case !set:
				if policy.ExcludeUnset || policy.ExcludeDefaults {
					continue
				}
				out[name] = nil
			case null:
				out[name] = nil
			default:
				if policy.ExcludeDefaults && matchesDefault(reflect.ValueOf(value), field) {
					continue
				}
				dumped, err := dumpValue(reflect.ValueOf(value), policy)
				if err != nil {
					return err
				}
				out[name] = dumped
			}
			continue
		}

		if policy.ExcludeDefaults && matchesDefault(fv, field) {
			continue
		}
		dumped, err := dumpValue(fv, policy)
		if err != nil {
			return err
		}
		out[name] = dumped
	}
	return nil
}

func dumpValue(rv reflect.Value, policy DumpPolicy) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return t.Format(time.RFC3339), nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return dumpValue(rv.Elem(), policy)
	case reflect.Struct:
		nested := make(map[string]any)
		if err := dumpStruct(rv, policy, nested); err != nil {
			return nil, err
		}
		return nested, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		items := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := dumpValue(rv.Index(i), policy)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			val, err := dumpValue(iter.Value(), policy)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	default:
		return rv.Interface(), nil
	}
}

// matchesDefault reports whether the field value equals its declared
// default: the `default:` tag when present, otherwise the zero value.
func matchesDefault(fv reflect.Value, field reflect.StructField) bool {
	tag, ok := field.Tag.Lookup("default")
	if !ok {
		return fv.IsZero()
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String() == tag
	case reflect.Bool:
		b, err := strconv.ParseBool(tag)
		return err == nil && fv.Bool() == b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(tag, 10, 64)
		return err == nil && fv.Int() == n
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(tag, 64)
		return err == nil && fv.Float() == f
	default:
		return fv.IsZero()
	}
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		name = field.Name
	}
	return name
}

// isTypedBody reports whether the value behaves like a typed payload, i.e.
// a struct (or pointer to one) with declared fields. The test is
// structural; anything that fails inspection is treated as a raw body.
func isTypedBody(v any) (typed bool) {
	defer func() {
		if recover() != nil {
			typed = false
		}
	}()
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct && rv.NumField() > 0
}

// normalizeBody turns a typed-or-raw body argument into the map or bytes
// handed to the transport. Typed payloads are dumped with the verb's
// policy; maps and pre-serialised JSON pass through unchanged.
func normalizeBody(body any, verb string) (any, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return b, nil
	case json.RawMessage:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		if !isTypedBody(body) {
			return nil, fmt.Errorf("%w: %T", ErrInvalidBody, body)
		}
		return Dump(body, policyForVerb(verb))
	}
}
