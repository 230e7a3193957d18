package generator

import (
	"bytes"
	"encoding/json"
)

// obj is an insertion-ordered JSON object builder. encoding/json sorts a
// plain map's keys alphabetically when marshalling, which would scramble
// an object node's declared property order — and reference resolution
// depends on that order (a property can only "ref:./x" a sibling declared
// before it). obj preserves the order it was built in instead.
type obj struct {
	keys []string
	vals []any
}

func newObj() *obj {
	return &obj{}
}

func (o *obj) set(key string, val any) *obj {
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
	return o
}

func (o *obj) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
