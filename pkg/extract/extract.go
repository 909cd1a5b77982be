// Package extract recovers structured payloads from raw model output. The
// upstream model does not reliably obey the prompt's shape contract: it may
// return a bare array, wrap the payload in a container property, mis-nest it,
// or narrate prose around the JSON. Extraction runs a fixed cascade of tiers
// and stops at the first one that produces a match. The package never
// fabricates fields; it only locates a structurally plausible payload.
package extract

import (
	"encoding/json"
	"sort"
	"strings"

	apperrors "github.com/WanderWise/wander-wise-backend/errors"
)

// Predicate is a minimal structural check on a candidate object: required
// fields present with the right primitive types, no semantic validation.
type Predicate func(obj map[string]interface{}) bool

// Spec describes what one pipeline stage expects from the model output.
type Spec struct {
	// Stage names the pipeline stage for diagnostics.
	Stage string
	// Predicate accepts a structurally plausible candidate object.
	Predicate Predicate
	// ContainerKeys are object properties whose array value may hold the
	// payload (e.g. "destinations", "hotels", "Itinerary").
	ContainerKeys []string
}

// Candidates converts raw model text into a list of candidate objects using
// the tiered recovery cascade. On total failure it returns an
// UNPARSEABLE_RESPONSE error carrying the stage name and the raw text.
func Candidates(raw string, spec Spec) ([]map[string]interface{}, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		if out, ok := fromParsed(parsed, spec, true); ok {
			return out, nil
		}
		return nil, apperrors.UnparseableResponse(spec.Stage, raw)
	}

	// Direct parsing failed: the JSON may be embedded in explanatory prose.
	if out, ok := fromTextScan(raw, spec); ok {
		return out, nil
	}

	return nil, apperrors.UnparseableResponse(spec.Stage, raw)
}

// fromParsed applies the in-order tiers to an already-decoded value. The
// nested recursive search only runs when allowNested is set; the text-scan
// fallback re-applies the earlier tiers without it.
func fromParsed(parsed interface{}, spec Spec, allowNested bool) ([]map[string]interface{}, bool) {
	if out, ok := fromArray(parsed, spec.Predicate); ok {
		return out, true
	}
	if out, ok := fromContainer(parsed, spec); ok {
		return out, true
	}
	if out, ok := fromLoneObject(parsed, spec.Predicate); ok {
		return out, true
	}
	if allowNested {
		if out := nestedSearch(parsed, spec); len(out) > 0 {
			return out, true
		}
	}
	return nil, false
}

// fromArray accepts a direct array of candidate objects when its first
// element satisfies the predicate. A well-formed empty array is a successful
// zero-candidate match; non-emptiness policy belongs to the stage sequencer.
func fromArray(v interface{}, pred Predicate) ([]map[string]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	if len(arr) == 0 {
		return []map[string]interface{}{}, true
	}
	first, ok := arr[0].(map[string]interface{})
	if !ok || !pred(first) {
		return nil, false
	}
	return toObjects(arr), true
}

// fromContainer accepts an object exposing a known container property whose
// array value passes the first-element check.
func fromContainer(v interface{}, spec Spec) ([]map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	for _, key := range spec.ContainerKeys {
		if out, ok := fromArray(obj[key], spec.Predicate); ok {
			return out, true
		}
	}
	return nil, false
}

// fromLoneObject wraps a single object satisfying the predicate into a
// one-element list.
func fromLoneObject(v interface{}, pred Predicate) ([]map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok || !pred(obj) {
		return nil, false
	}
	return []map[string]interface{}{obj}, true
}

// nestedSearch recursively walks objects and arrays collecting every nested
// array whose first element satisfies the predicate, and every nested object
// satisfying it directly. Object keys are visited in sorted order so results
// are deterministic.
func nestedSearch(v interface{}, spec Spec) []map[string]interface{} {
	var results []map[string]interface{}

	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case map[string]interface{}:
			if spec.Predicate(node) {
				results = append(results, node)
				return
			}
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if isContainerKey(k, spec.ContainerKeys) {
					if out, ok := fromArray(node[k], spec.Predicate); ok {
						results = append(results, out...)
						continue
					}
				}
				walk(node[k])
			}
		case []interface{}:
			for _, item := range node {
				walk(item)
			}
		}
	}

	walk(v)
	return results
}

// fromTextScan locates the first bracketed-array or braced-object substring,
// parses it alone, and re-applies the non-recursive tiers to the result.
func fromTextScan(raw string, spec Spec) ([]map[string]interface{}, bool) {
	for _, sub := range []string{scanDelimited(raw, '[', ']'), scanDelimited(raw, '{', '}')} {
		if sub == "" {
			continue
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(sub), &parsed); err != nil {
			continue
		}
		if out, ok := fromParsed(parsed, spec, false); ok {
			return out, true
		}
	}
	return nil, false
}

// scanDelimited returns the substring from the first opening delimiter to the
// last matching closing delimiter, or "" when no such span exists.
func scanDelimited(raw string, opening, closing byte) string {
	start := strings.IndexByte(raw, opening)
	if start == -1 {
		return ""
	}
	end := strings.LastIndexByte(raw, closing)
	if end <= start {
		return ""
	}
	return raw[start : end+1]
}

func isContainerKey(key string, keys []string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func toObjects(arr []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Decode re-marshals candidate objects into a typed slice. It is the bridge
// between the untyped recovery cascade and the stage's domain type.
func Decode[T any](candidates []map[string]interface{}) ([]T, error) {
	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HasString reports whether obj has a string at key. Helper for building
// predicates; presence and type only, no semantic checks.
func HasString(obj map[string]interface{}, key string) bool {
	_, ok := obj[key].(string)
	return ok
}

// HasNumber reports whether obj has a JSON number at key.
func HasNumber(obj map[string]interface{}, key string) bool {
	_, ok := obj[key].(float64)
	return ok
}

// HasArray reports whether obj has an array at key.
func HasArray(obj map[string]interface{}, key string) bool {
	_, ok := obj[key].([]interface{})
	return ok
}

// HasObject reports whether obj has a nested object at key.
func HasObject(obj map[string]interface{}, key string) bool {
	_, ok := obj[key].(map[string]interface{})
	return ok
}
