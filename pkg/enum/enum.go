// Package enum keeps a two-way table between enum values and their string
// tokens. Tables are built once at package init; Add panics on a duplicated
// value or token, so a broken table fails at startup.
package enum

import (
	"fmt"
	"sort"
	"sync"
)

type Enum struct {
	name     string
	mu       sync.RWMutex
	byIndex  map[interface{}]string
	byString map[string]interface{}
	order    []string
}

func New(name string) *Enum {
	return &Enum{
		name:     name,
		byIndex:  make(map[interface{}]string),
		byString: make(map[string]interface{}),
	}
}

func (e *Enum) Name() string {
	return e.name
}

func (e *Enum) Add(index interface{}, str string) *Enum {

	e.mu.Lock()
	defer e.mu.Unlock()

	if prev, ok := e.byIndex[index]; ok {
		panic(fmt.Sprintf("%s: value %v already registered as %q", e.name, index, prev))
	}

	if _, ok := e.byString[str]; ok {
		panic(fmt.Sprintf("%s: token %q already registered", e.name, str))
	}

	e.byIndex[index] = str
	e.byString[str] = index
	e.order = append(e.order, str)

	return e
}

func (e *Enum) GetByIndex(index interface{}) (string, bool) {
	e.mu.RLock()
	val, ok := e.byIndex[index]
	e.mu.RUnlock()

	return val, ok
}

func (e *Enum) GetByString(str string) (interface{}, bool) {
	e.mu.RLock()
	val, ok := e.byString[str]
	e.mu.RUnlock()

	return val, ok
}

// StringKeys returns tokens in registration order.
func (e *Enum) StringKeys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	retval := make([]string, len(e.order))
	copy(retval, e.order)

	return retval
}

// SortedStringKeys returns tokens sorted alphabetically.
func (e *Enum) SortedStringKeys() []string {
	retval := e.StringKeys()
	sort.Strings(retval)

	return retval
}

func (e *Enum) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.order)
}
