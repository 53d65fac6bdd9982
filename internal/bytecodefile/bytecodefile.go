// Package bytecodefile serializes compiled wisp bytecode to and from disk, so
// "wisp build" and "wisp run"/"wisp disasm" can be separate pipeline stages.
//
// The format is an internal encoding/gob stream of a [compiler.Bytecode]; it is
// not meant to be read by anything but this package and carries no version
// negotiation beyond gob's own type descriptors.
package bytecodefile

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/nilsdev/wisp/compiler"
	"github.com/nilsdev/wisp/object"
)

func init() {
	gob.Register(&object.Integer{})
	gob.Register(&object.Boolean{})
	gob.Register(&object.String{})
	gob.Register(&object.Null{})
	gob.Register(&object.Array{})
	gob.Register(&object.Hash{})
	gob.Register(&object.CompiledFunction{})
}

// Write encodes bytecode and writes it to path.
func Write(path string, bytecode *compiler.Bytecode) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bytecode); err != nil {
		return fmt.Errorf("encode bytecode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write bytecode file: %w", err)
	}
	return nil
}

// Read reads and decodes a bytecode file previously written by Write.
func Read(path string) (*compiler.Bytecode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bytecode file: %w", err)
	}

	var bytecode compiler.Bytecode
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&bytecode); err != nil {
		return nil, fmt.Errorf("decode bytecode: %w", err)
	}
	return &bytecode, nil
}
