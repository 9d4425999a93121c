package registry

import (
	"bytes"
	"path/filepath"
	"testing"
)

func dependencyFixtures() []fixture {
	return []fixture{
		// A -> B, C (absent), D; B -> D
		{name: "pkg/msg/A", hash: 1, nested: []string{"pkg/msg/B", "pkg/msg/C", "pkg/msg/D"}},
		{name: "pkg/msg/B", hash: 2, nested: []string{"pkg/msg/D"}},
		{name: "pkg/msg/D", hash: 3},
	}
}

func TestBuildDependencyTree(t *testing.T) {
	reg, _, _ := testRegistry(t)
	loadFixtures(t, reg, dependencyFixtures()...)

	root, err := reg.BuildDependencyTree("pkg/msg/A")
	if err != nil {
		t.Fatalf("BuildDependencyTree: %v", err)
	}
	if root.TypeName != "pkg/msg/A" || root.Record == nil {
		t.Fatalf("unexpected root %+v", root)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}

	b, c, d := root.Children[0], root.Children[1], root.Children[2]
	if b.TypeName != "pkg/msg/B" || len(b.Children) != 1 || b.Children[0].TypeName != "pkg/msg/D" {
		t.Errorf("B subtree wrong: %+v", b)
	}
	if b.Children[0].Deduped {
		t.Error("first occurrence of D should not be deduped")
	}
	if !c.Missing || c.Record != nil {
		t.Errorf("C should be missing: %+v", c)
	}
	if !d.Deduped {
		t.Error("second occurrence of D should be deduped")
	}

	if got := MissingTypes(root); len(got) != 1 || got[0] != "pkg/msg/C" {
		t.Errorf("MissingTypes = %v, want [pkg/msg/C]", got)
	}
}

func TestBuildDependencyTreeUnknownRoot(t *testing.T) {
	reg, _, _ := testRegistry(t)
	if _, err := reg.BuildDependencyTree("pkg/msg/Nope"); err == nil {
		t.Error("expected error for unknown root type")
	}
}

func TestFlattenTreeOrder(t *testing.T) {
	reg, _, _ := testRegistry(t)
	loadFixtures(t, reg, dependencyFixtures()...)

	root, err := reg.BuildDependencyTree("pkg/msg/A")
	if err != nil {
		t.Fatal(err)
	}

	order := FlattenTree(root)
	var names []string
	for _, r := range order {
		names = append(names, r.FullName)
	}
	want := []string{"pkg/msg/D", "pkg/msg/B", "pkg/msg/A"}
	if len(names) != len(want) {
		t.Fatalf("FlattenTree = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FlattenTree[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPrintTree(t *testing.T) {
	reg, _, _ := testRegistry(t)
	loadFixtures(t, reg, dependencyFixtures()...)

	root, err := reg.BuildDependencyTree("pkg/msg/A")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintTree(&buf, root, "", true)

	want := "pkg/msg/A [MSG]\n" +
		" ├── pkg/msg/B [MSG]\n" +
		" │   └── pkg/msg/D [MSG]\n" +
		" ├── pkg/msg/C (missing)\n" +
		" └── pkg/msg/D (deduped)\n"
	if buf.String() != want {
		t.Errorf("PrintTree output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestSharePaths(t *testing.T) {
	got := SharePaths("/opt/ros/jazzy::/ws/install/ ")
	want := []Source{
		{Name: "/opt/ros/jazzy", BasePath: filepath.Join("/opt/ros/jazzy", "share")},
		{Name: "/ws/install/", BasePath: filepath.Join("/ws/install", "share")},
	}
	if len(got) != len(want) {
		t.Fatalf("SharePaths = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SharePaths[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := SharePaths(""); len(got) != 0 {
		t.Errorf("SharePaths(\"\") = %+v, want none", got)
	}
}
