package compiler

import "testing"

func TestDefine(t *testing.T) {
	expected := map[string]Symbol{
		"a": {Name: "a", Scope: GlobalScope, Index: 0},
		"b": {Name: "b", Scope: GlobalScope, Index: 1},
		"c": {Name: "c", Scope: LocalScope, Index: 0},
		"d": {Name: "d", Scope: LocalScope, Index: 1},
	}

	global := NewSymbolTable()

	a := global.Define("a")
	if a != expected["a"] {
		t.Errorf("expected a=%+v, got=%+v", expected["a"], a)
	}

	b := global.Define("b")
	if b != expected["b"] {
		t.Errorf("expected b=%+v, got=%+v", expected["b"], b)
	}

	global.Push()

	c := global.Define("c")
	if c != expected["c"] {
		t.Errorf("expected c=%+v, got=%+v", expected["c"], c)
	}

	d := global.Define("d")
	if d != expected["d"] {
		t.Errorf("expected d=%+v, got=%+v", expected["d"], d)
	}
}

func TestResolveGlobal(t *testing.T) {
	global := NewSymbolTable()
	global.Define("a")
	global.Define("b")

	expected := []Symbol{
		{Name: "a", Scope: GlobalScope, Index: 0},
		{Name: "b", Scope: GlobalScope, Index: 1},
	}

	for _, sym := range expected {
		result, ok := global.Resolve(sym.Name)
		if !ok {
			t.Errorf("name %s not resolvable", sym.Name)
			continue
		}
		if result != sym {
			t.Errorf("expected %s to resolve to %+v, got=%+v", sym.Name, sym, result)
		}
	}
}

func TestResolveLocal(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a")
	table.Define("b")

	table.Push()
	table.Define("c")
	table.Define("d")

	expected := []Symbol{
		{Name: "a", Scope: GlobalScope, Index: 0},
		{Name: "b", Scope: GlobalScope, Index: 1},
		{Name: "c", Scope: LocalScope, Index: 0},
		{Name: "d", Scope: LocalScope, Index: 1},
	}

	for _, sym := range expected {
		result, ok := table.Resolve(sym.Name)
		if !ok {
			t.Errorf("name %s not resolvable", sym.Name)
			continue
		}
		if result != sym {
			t.Errorf("expected %s to resolve to %+v, got=%+v", sym.Name, sym, result)
		}
	}
}

func TestResolveNestedLocal(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a")
	table.Define("b")

	table.Push()
	table.Define("c")

	table.Push()
	table.Define("d")

	expected := []Symbol{
		{Name: "a", Scope: GlobalScope, Index: 0},
		{Name: "b", Scope: GlobalScope, Index: 1},
		{Name: "c", Scope: LocalScope, Index: 0},
		{Name: "d", Scope: LocalScope, Index: 0},
	}

	for _, sym := range expected {
		result, ok := table.Resolve(sym.Name)
		if !ok {
			t.Errorf("name %s not resolvable", sym.Name)
			continue
		}
		if result != sym {
			t.Errorf("expected %s to resolve to %+v, got=%+v", sym.Name, sym, result)
		}
	}
}

func TestResolveShadowing(t *testing.T) {
	table := NewSymbolTable()
	table.Define("x")

	table.Push()
	inner := table.Define("x")

	result, ok := table.Resolve("x")
	if !ok {
		t.Fatalf("name x not resolvable")
	}
	if result != inner {
		t.Errorf("expected inner x=%+v to shadow outer, got=%+v", inner, result)
	}
	if result.Scope != LocalScope {
		t.Errorf("expected shadowed x to resolve in LocalScope, got=%s", result.Scope)
	}
}

func TestResolveUnresolvable(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a")

	table.Push()
	table.Define("b")

	_, ok := table.Resolve("c")
	if ok {
		t.Errorf("expected c to be unresolvable")
	}
}

func TestPushPop(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a")
	table.Define("b")

	table.Push()
	table.Define("c")
	table.Define("d")
	table.Define("e")

	numDefs := table.Pop()
	if numDefs != 3 {
		t.Errorf("expected Pop to return 3 definitions, got=%d", numDefs)
	}

	// c, d, e should no longer resolve once their scope is popped.
	for _, name := range []string{"c", "d", "e"} {
		if _, ok := table.Resolve(name); ok {
			t.Errorf("expected %s to be unresolvable after Pop", name)
		}
	}

	// a, b remain visible in the global scope.
	for _, name := range []string{"a", "b"} {
		if _, ok := table.Resolve(name); !ok {
			t.Errorf("expected %s to still resolve after Pop", name)
		}
	}
}

func TestPopGlobalScopePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Pop on the global scope to panic")
		}
	}()

	table := NewSymbolTable()
	table.Pop()
}

func TestNumDefinitions(t *testing.T) {
	table := NewSymbolTable()
	table.Define("a")
	table.Define("b")

	if n := table.NumDefinitions(); n != 2 {
		t.Errorf("expected 2 definitions in global scope, got=%d", n)
	}

	table.Push()
	table.Define("c")

	if n := table.NumDefinitions(); n != 1 {
		t.Errorf("expected 1 definition in the new local scope, got=%d", n)
	}

	table.Pop()

	if n := table.NumDefinitions(); n != 2 {
		t.Errorf("expected 2 definitions after popping back to global, got=%d", n)
	}
}
