package bridge

import (
	"github.com/apache/arrow-go/v18/arrow"
	"strconv"
	"strings"
	"sync"
)

//FunctionTable assigns numeric identifiers to function keys
type FunctionTable interface {
	ID(key string) int64
}

//Table represents mutable function id table, ids are assigned in first seen order
type Table struct {
	sync.RWMutex
	ids  map[string]int64
	keys []string
}

//ID returns key id, assigning the next id for a new key
func (t *Table) ID(key string) int64 {
	t.RWMutex.RLock()
	id, ok := t.ids[key]
	t.RWMutex.RUnlock()
	if ok {
		return id
	}
	t.RWMutex.Lock()
	defer t.RWMutex.Unlock()
	if id, ok = t.ids[key]; ok {
		return id
	}
	id = int64(len(t.keys))
	t.ids[key] = id
	t.keys = append(t.keys, key)
	return id
}

//Lookup returns key id
func (t *Table) Lookup(key string) (int64, bool) {
	t.RWMutex.RLock()
	defer t.RWMutex.RUnlock()
	id, ok := t.ids[key]
	return id, ok
}

//Keys returns keys ordered by id
func (t *Table) Keys() []string {
	t.RWMutex.RLock()
	defer t.RWMutex.RUnlock()
	return append([]string{}, t.keys...)
}

//NewTable creates a function table
func NewTable() *Table {
	return &Table{ids: map[string]int64{}}
}

//FunctionKey returns name:len1:type1_len2:type2 function key, a nil type renders as 0:
func FunctionKey(name string, args []arrow.DataType) string {
	builder := strings.Builder{}
	builder.WriteString(name)
	builder.WriteByte(':')
	for i, arg := range args {
		if i > 0 {
			builder.WriteByte('_')
		}
		typeName := ""
		if arg != nil {
			typeName = arg.String()
		}
		builder.WriteString(strconv.Itoa(len(typeName)))
		builder.WriteByte(':')
		builder.WriteString(typeName)
	}
	return builder.String()
}
