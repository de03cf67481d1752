package core

import (
	"fmt"
	"strings"
)

// Record is a nested attribute tree.
//
// Fields are kept in the order they were first set so that Pprint
// output is stable.
type Record struct {
	keys []string
	vals map[string]interface{}
}

// NewRecord makes a Record from alternating names and values.
//
// Panics if given a name without a value.
func NewRecord(pairs ...interface{}) *Record {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("odd args to NewRecord: %v", pairs))
	}
	r := &Record{
		vals: make(map[string]interface{}, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		name, is := pairs[i].(string)
		if !is {
			name = fmt.Sprintf("%v", pairs[i])
		}
		r.Set(name, pairs[i+1])
	}
	return r
}

// Set sets (or replaces) the field.
func (r *Record) Set(name string, v interface{}) {
	if r.vals == nil {
		r.vals = make(map[string]interface{}, 8)
	}
	if _, have := r.vals[name]; !have {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Get returns the field's value.
func (r *Record) Get(name string) (interface{}, bool) {
	if r == nil || r.vals == nil {
		return nil, false
	}
	v, have := r.vals[name]
	return v, have
}

// Path follows a sequence of field names through nested Records.
func (r *Record) Path(names ...string) (interface{}, bool) {
	var x interface{} = r
	for _, name := range names {
		sub, is := x.(*Record)
		if !is {
			return nil, false
		}
		v, have := sub.Get(name)
		if !have {
			return nil, false
		}
		x = v
	}
	return x, true
}

// Fields returns the field names in order.
func (r *Record) Fields() []string {
	if r == nil {
		return nil
	}
	acc := make([]string, len(r.keys))
	copy(acc, r.keys)
	return acc
}

// Pprint renders the record one field per line.  Nested records are
// indented by delta.
func (r *Record) Pprint(indent, delta string) string {
	var b strings.Builder
	for i, k := range r.keys {
		if 0 < i {
			b.WriteString("\n")
		}
		b.WriteString(indent + k + ": ")
		switch vv := r.vals[k].(type) {
		case *Record:
			b.WriteString("\n" + vv.Pprint(indent+delta, delta))
		case nil:
			b.WriteString("None")
		default:
			fmt.Fprintf(&b, "%v", vv)
		}
	}
	return b.String()
}

func (r *Record) String() string {
	return r.Pprint("", "  ")
}
