// Package keyutil builds stable identity keys for rendered items.
package keyutil

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	mapset "github.com/deckarep/golang-set/v2"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// GenerateItemKey returns "<prefix>-<id>-<index>"
func GenerateItemKey(prefix string, id any, index int) string {
	return fmt.Sprintf("%s-%v-%d", prefix, id, index)
}

// Identified is anything with a string id
type Identified interface {
	GetID() string
}

// GenerateListKey keys each item with its position. An empty prefix means "item".
func GenerateListKey[T Identified](items []T, prefix string) []string {
	if prefix == "" {
		prefix = "item"
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = GenerateItemKey(prefix, item.GetID(), i)
	}
	return out
}

// SafeKey returns "<prefix>__<id>" with every character outside
// [A-Za-z0-9_-] replaced by "_". A zero id uses fallback, then "unknown".
func SafeKey(prefix string, id any, fallback string) string {
	var idStr string
	switch {
	case isComposite(id):
		raw, err := json.Marshal(id)
		if err != nil {
			idStr = fmt.Sprint(id)
		} else {
			idStr = string(raw)
		}
	case !isZero(id):
		idStr = fmt.Sprint(id)
	case fallback != "":
		idStr = fallback
	default:
		idStr = "unknown"
	}
	return unsafeChars.ReplaceAllString(prefix+"__"+idStr, "_")
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

func isComposite(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// Validation is the result of ValidateKeys
type Validation struct {
	Valid      bool     `json:"valid"`
	Duplicates []string `json:"duplicates"`
}

// ValidateKeys reports keys seen more than once. Every repeat occurrence is
// listed, so a key appearing three times is listed twice.
func ValidateKeys(keys []string) Validation {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(keys))
	dups := []string{}
	for _, k := range keys {
		if !seen.Add(k) {
			dups = append(dups, k)
		}
	}
	return Validation{Valid: len(dups) == 0, Duplicates: dups}
}
