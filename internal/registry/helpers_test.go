package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/fieldtype"
	"github.com/ros2types/ros2types/internal/typedesc"
)

// fixture describes a type to write under a test root.
type fixture struct {
	name   string   // full name, e.g. "std_msgs/msg/String"
	hash   int      // rendered with hashOf
	text   string   // definition text
	refs   []string // referenced_type_descriptions
	nested []string // NestedType fields of the type itself
}

func hashOf(n int) string {
	return fmt.Sprintf("RIHS01_%064x", n)
}

func describe(f fixture) *typedesc.HashedTypeDescription {
	fields := []typedesc.Field{}
	for i, n := range f.nested {
		fields = append(fields, typedesc.Field{
			Name: fmt.Sprintf("field%d", i),
			Type: typedesc.FieldType{TypeID: fieldtype.NestedType, NestedTypeName: n},
		})
	}
	if len(fields) == 0 {
		empty := ""
		fields = append(fields, typedesc.Field{
			Name:         "data",
			DefaultValue: &empty,
			Type:         typedesc.FieldType{TypeID: fieldtype.String},
		})
	}

	refs := []typedesc.IndividualTypeDescription{}
	for _, r := range f.refs {
		refs = append(refs, typedesc.IndividualTypeDescription{TypeName: r, Fields: []typedesc.Field{}})
	}

	return &typedesc.HashedTypeDescription{
		TypeDescriptionMsg: typedesc.TypeDescription{
			TypeDescription:            typedesc.IndividualTypeDescription{TypeName: f.name, Fields: fields},
			ReferencedTypeDescriptions: refs,
		},
		TypeHashes: []typedesc.TypeNameAndHash{{TypeName: f.name, HashString: hashOf(f.hash)}},
	}
}

// writeFixture writes <root>/<pkg>/<kind>/<Name>.<kind> and its .json
// sibling, returning the definition path.
func writeFixture(t *testing.T, root string, f fixture) string {
	t.Helper()
	parts := strings.Split(f.name, "/")
	if len(parts) != 3 {
		t.Fatalf("fixture name %q must have three segments", f.name)
	}
	dir := filepath.Join(root, parts[0], parts[1])
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	data, err := json.MarshalIndent(describe(f), "", "  ")
	if err != nil {
		t.Fatalf("marshaling description for %s: %v", f.name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, parts[2]+".json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	defPath := filepath.Join(dir, parts[2]+"."+parts[1])
	if err := os.WriteFile(defPath, []byte(f.text), 0644); err != nil {
		t.Fatal(err)
	}
	return defPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// recorder is an Observer that remembers every event.
type recorder struct {
	mu       sync.Mutex
	failures map[string]int
	loaded   int
	missing  int
}

func newRecorder() *recorder {
	return &recorder{failures: make(map[string]int)}
}

func (r *recorder) LoadFailed(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[kind]++
}

func (r *recorder) TypesLoaded(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = total
}

func (r *recorder) DependencyMissing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing++
}

// testRegistry returns a registry logging JSON lines into the returned
// buffer.
func testRegistry(t *testing.T) (*Registry, *recorder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	rec := newRecorder()
	reg := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)), WithObserver(rec))
	return reg, rec, &buf
}

func warnLines(buf *bytes.Buffer) []string {
	var out []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"level":"warn"`) {
			out = append(out, line)
		}
	}
	return out
}
