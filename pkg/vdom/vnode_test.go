package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCreateElementArgs(t *testing.T) {
	child := Span("inner")
	node := Div(
		nil,
		Class("card", "wide"),
		[]Attr{ID("main"), {}},
		child,
		[]*VNode{nil, Text("tail")},
		"text",
		Func(func() *VNode { return P("comp") }),
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %v %q, want Element div", node.Kind, node.Tag)
	}
	if node.Props["class"] != "card wide" {
		t.Errorf("class = %v, want %q", node.Props["class"], "card wide")
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v, want %q", node.Props["id"], "main")
	}
	if _, ok := node.Props[""]; ok {
		t.Error("empty attribute should be ignored")
	}
	if len(node.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(node.Children))
	}
	if node.Children[0] != child {
		t.Error("first child should be the span")
	}
	if node.Children[3].Kind != KindComponent {
		t.Errorf("last child kind = %v, want Component", node.Children[3].Kind)
	}
}

func TestFragmentSkipsNil(t *testing.T) {
	f := Fragment(nil, Text("a"), (*VNode)(nil), []*VNode{Text("b"), nil}, "c")
	if len(f.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(f.Children))
	}
	if got := TextContent(f); got != "abc" {
		t.Errorf("TextContent = %q, want %q", got, "abc")
	}
}

func TestConditionals(t *testing.T) {
	n := Text("x")
	if If(false, n) != nil {
		t.Error("If(false) should be nil")
	}
	if If(true, n) != n {
		t.Error("If(true) should return node")
	}
	called := false
	When(false, func() *VNode { called = true; return n })
	if called {
		t.Error("When(false) must not evaluate fn")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "", "c"}
	nodes := Range(items, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Li(s)
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
}

func TestWalkStopsEarly(t *testing.T) {
	tree := Div(P("one"), P("two"), P("three"))
	seen := 0
	Walk(tree, func(v *VNode) bool {
		if v.Tag == "p" {
			seen++
			return seen < 2
		}
		return true
	})
	if seen != 2 {
		t.Errorf("seen = %d, want 2", seen)
	}
}
