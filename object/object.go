// Package object defines the runtime value domain for the wisp programming language.
//
// This package implements the tagged-union object system produced by the
// compiler's constant pool and consumed by the virtual machine's operand
// stack, globals table, and container values.
//
// Key components:
//   - [Object] interface: the base interface for all runtime values
//   - Value variants ([Integer], [Boolean], [String], [Null], [Array], [Hash], [CompiledFunction])
//   - [Hashable] interface: for objects that can be used as hash keys
package object

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/nilsdev/wisp/code"
)

//nolint:revive
const (
	INTEGER_OBJ           = "INTEGER"
	BOOLEAN_OBJ           = "BOOLEAN"
	STRING_OBJ            = "STRING"
	NULL_OBJ              = "NULL"
	ARRAY_OBJ             = "ARRAY"
	HASH_OBJ              = "HASH"
	COMPILED_FUNCTION_OBJ = "COMPILED_FUNCTION_OBJ"
)

// Type represents the type of object.
type Type string

// Object is the interface that wraps the basic operations of all wisp objects.
// All wisp objects implement this interface.
type Object interface {
	// Type returns the type of the object as a value of Type.
	Type() Type

	// Inspect returns a string representation of the object.
	Inspect() string
}

// Integer represents a wisp integer value.
type Integer struct {
	Value int64
}

// Type returns the type of the object.
func (i *Integer) Type() Type { return INTEGER_OBJ }

// Inspect returns a string representation of the object.
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Boolean represents a wisp boolean value.
type Boolean struct {
	Value bool
}

// Type returns the type of the object.
func (b *Boolean) Type() Type { return BOOLEAN_OBJ }

// Inspect returns a string representation of the object.
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// String represents a wisp string value.
type String struct {
	Value string
	// Cache for the hash key to avoid recalculating it
	hashKey *HashKey
}

// Type returns the type of the object.
func (s *String) Type() Type { return STRING_OBJ }

// Inspect returns a string representation of the object.
func (s *String) Inspect() string { return s.Value }

// Null represents the wisp null value. There is exactly one canonical
// instance, shared by the VM (see vm.Null).
type Null struct{}

// Type returns the type of the object.
func (n *Null) Type() Type { return NULL_OBJ }

// Inspect returns a string representation of the object.
func (n *Null) Inspect() string { return "null" }

// Array represents a wisp array.
type Array struct {
	Elements []Object
}

// Type returns the type of the object.
func (a *Array) Type() Type { return ARRAY_OBJ }

// Inspect returns a string representation of the object.
func (a *Array) Inspect() string {
	var out strings.Builder

	elements := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elements[i] = e.Inspect()
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

// HashKey represents a hash key derived from a hashable object.
type HashKey struct {
	Type  Type
	Value uint64
}

// HashKey returns the hash key for the object.
func (b *Boolean) HashKey() HashKey {
	var value uint64

	if b.Value {
		value = 1
	} else {
		value = 0
	}
	return HashKey{Type: b.Type(), Value: value}
}

// HashKey returns the hash key for the object.
func (i *Integer) HashKey() HashKey {
	//nolint:gosec
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

// HashKey returns the hash key for the object.
func (s *String) HashKey() HashKey {
	// Return the cached hash key if available
	if s.hashKey != nil {
		return *s.hashKey
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(s.Value))

	hashKey := HashKey{Type: s.Type(), Value: h.Sum64()}
	s.hashKey = &hashKey
	return hashKey
}

// HashPair represents a single key/value pair stored in a Hash.
type HashPair struct {
	Key   Object
	Value Object
}

// Hash represents a wisp hash map.
type Hash struct {
	Pairs map[HashKey]HashPair
}

// Type returns the type of the object.
func (h *Hash) Type() Type { return HASH_OBJ }

// Inspect returns a string representation of the object.
func (h *Hash) Inspect() string {
	var out strings.Builder

	pairs := make([]string, 0, len(h.Pairs))
	for _, pair := range h.Pairs {
		pairs = append(pairs, fmt.Sprintf("%s: %s", pair.Key.Inspect(), pair.Value.Inspect()))
	}

	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")

	return out.String()
}

// Hashable represents an object that can be used as a hash key.
// Deriving a HashKey from any object that doesn't implement this interface
// is a runtime error ("unusable as hash key").
type Hashable interface {
	HashKey() HashKey
}

// CompiledFunction represents a compiled function body: its bytecode
// instructions plus the local-slot bookkeeping the VM needs to set up a
// call frame. Produced only by the compiler, consumed only by OpCall.
type CompiledFunction struct {
	// Instructions holds the bytecode sequence of the compiled function.
	Instructions code.Instructions

	// NumLocals is the number of local-variable slots the function's frame
	// must reserve (parameters plus let-bound locals).
	NumLocals int

	// NumParameters is the number of parameters the function accepts.
	NumParameters int
}

// Type returns the object type of the compiled function.
func (c *CompiledFunction) Type() Type { return COMPILED_FUNCTION_OBJ }

// Inspect returns a formatted string representation of the CompiledFunction instance, including its memory address.
func (c *CompiledFunction) Inspect() string { return fmt.Sprintf("CompiledFunction[%p]", c) }
