package types

import (
	"iter"
	"slices"

	"github.com/ghettovoice/govcard/internal/util"
)

// KV is a single key/value pair.
type KV struct {
	Key   string
	Value string
}

// Values is an ordered multimap of string key/value pairs.
// Keys are matched case-insensitively, insertion order is preserved.
// It is typically used to store property parameters.
type Values struct {
	kvs []KV
}

// NewValues creates a Values from the given pairs.
func NewValues(kvs ...KV) *Values {
	return &Values{kvs: kvs}
}

// Len returns the number of stored pairs.
func (vals *Values) Len() int {
	if vals == nil {
		return 0
	}
	return len(vals.kvs)
}

// All iterates over all pairs in insertion order.
func (vals *Values) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if vals == nil {
			return
		}
		for _, kv := range vals.kvs {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// Get returns all values associated with the given key in insertion order.
// If there are no values associated with the key, Get returns the empty slice.
func (vals *Values) Get(key string) []string {
	if vals == nil {
		return nil
	}
	var out []string
	for _, kv := range vals.kvs {
		if util.EqFold(kv.Key, key) {
			out = append(out, kv.Value)
		}
	}
	return out
}

func (vals *Values) First(key string) (string, bool) {
	if vals == nil {
		return "", false
	}
	for _, kv := range vals.kvs {
		if util.EqFold(kv.Key, key) {
			return kv.Value, true
		}
	}
	return "", false
}

func (vals *Values) Last(key string) (string, bool) {
	if vals == nil {
		return "", false
	}
	for i := len(vals.kvs) - 1; i >= 0; i-- {
		if util.EqFold(vals.kvs[i].Key, key) {
			return vals.kvs[i].Value, true
		}
	}
	return "", false
}

// Set sets the key to value. It replaces any existing values,
// keeping the position of the first occurrence, or appends if absent.
func (vals *Values) Set(key, value string) *Values {
	first := -1
	for i, kv := range vals.kvs {
		if util.EqFold(kv.Key, key) {
			first = i
			break
		}
	}
	if first < 0 {
		vals.kvs = append(vals.kvs, KV{key, value})
		return vals
	}
	vals.kvs[first].Value = value
	vals.kvs = vals.del(vals.kvs, key, first+1)
	return vals
}

func (vals *Values) del(kvs []KV, key string, from int) []KV {
	out := kvs[:from]
	for _, kv := range kvs[from:] {
		if !util.EqFold(kv.Key, key) {
			out = append(out, kv)
		}
	}
	return out
}

// Append adds a value to the end of the list.
func (vals *Values) Append(key, value string) *Values {
	vals.kvs = append(vals.kvs, KV{key, value})
	return vals
}

// Prepend adds a value to the front of the list.
func (vals *Values) Prepend(key, value string) *Values {
	vals.kvs = append([]KV{{key, value}}, vals.kvs...)
	return vals
}

// Del deletes the values associated with the key.
func (vals *Values) Del(key string) *Values {
	vals.kvs = vals.del(vals.kvs, key, 0)
	return vals
}

// Has checks whether a given key is in the list.
func (vals *Values) Has(key string) bool {
	_, ok := vals.First(key)
	return ok
}

// Clear resets the list.
func (vals *Values) Clear() *Values {
	vals.kvs = vals.kvs[:0]
	return vals
}

// Clone returns a deep copy.
func (vals *Values) Clone() *Values {
	if vals == nil {
		return nil
	}
	return &Values{kvs: slices.Clone(vals.kvs)}
}

// Equal reports whether both lists hold the same pairs in the same order.
// Keys compare case-insensitively, values byte-wise.
func (vals *Values) Equal(other *Values) bool {
	if vals.Len() != other.Len() {
		return false
	}
	if vals == nil || other == nil {
		return true
	}
	for i, kv := range vals.kvs {
		okv := other.kvs[i]
		if !util.EqFold(kv.Key, okv.Key) || kv.Value != okv.Value {
			return false
		}
	}
	return true
}
