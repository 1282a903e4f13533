package modelfiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// sourceTree lays out Dog (two models), Desk (upper-case extension) and
// Book (no models).
func sourceTree(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dog", "b_dog.obj"), "v 0 0 0\n")
	writeFile(t, filepath.Join(root, "Dog", "a_dog.obj"), "v 0 0 0\n")
	writeFile(t, filepath.Join(root, "Dog", "a_dog.mtl"), "newmtl fur\n")
	writeFile(t, filepath.Join(root, "Dog", "notes.txt"), "hi")
	writeFile(t, filepath.Join(root, "Desk", "Desk.OBJ"), "v 0 0 0\n")
	writeFile(t, filepath.Join(root, "Book", "readme.md"), "")
	return root
}

func TestHasExt(t *testing.T) {
	tests := []struct {
		name, ext string
		want      bool
	}{
		{"dog.obj", ".obj", true},
		{"Desk.OBJ", ".obj", true},
		{"dog.obj", "obj", true},
		{"dog.mtl", ".obj", false},
		{"obj", ".obj", false},
	}
	for _, tt := range tests {
		if got := HasExt(tt.name, tt.ext); got != tt.want {
			t.Errorf("HasExt(%q, %q) = %v, want %v", tt.name, tt.ext, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	root := sourceTree(t)
	paths := Find(root, []string{"Dog", "Desk", "Book", "Missing"}, ".obj", nil)

	want := Paths{
		"Dog":  "Dog/a_dog.obj",
		"Desk": "Desk/Desk.OBJ",
	}
	if len(paths) != len(want) {
		t.Fatalf("Find() = %v, want %v", paths, want)
	}
	for dir, p := range want {
		if paths[dir] != p {
			t.Errorf("paths[%q] = %q, want %q", dir, paths[dir], p)
		}
	}
}

func TestWriteAndReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), PathsFile)
	in := Paths{"Dog": "Dog/dog.obj"}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"Dog\": \"Dog/dog.obj\"\n}\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	out, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if out["Dog"] != "Dog/dog.obj" {
		t.Errorf("ReadJSON() = %v", out)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), PathsFile)
	if err := WriteJSON(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{}\n" {
		t.Errorf("file = %q, want {}", data)
	}
}

func TestSetupLinks(t *testing.T) {
	root := sourceTree(t)
	opts := DefaultOptions()
	opts.Dirs = []string{"Dog", "Desk", "Missing"}

	report, err := Setup(root, opts, nil)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if report.PathsSource != "found" {
		t.Errorf("PathsSource = %q, want found", report.PathsSource)
	}
	if _, err := os.Stat(filepath.Join(root, PathsFile)); err != nil {
		t.Errorf("paths file not written: %v", err)
	}

	want := map[string]Action{"Dog": Linked, "Desk": Linked, "Missing": Skipped}
	for dir, a := range want {
		if report.Dirs[dir] != a {
			t.Errorf("Dirs[%q] = %q, want %q", dir, report.Dirs[dir], a)
		}
	}

	info, err := os.Lstat(filepath.Join(root, ModelsDir, "Dog"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("models/Dog is not a symlink")
	}
	if _, err := os.Stat(filepath.Join(root, ModelsDir, "Dog", "a_dog.obj")); err != nil {
		t.Errorf("model not reachable through link: %v", err)
	}
}

func TestSetupSkipsExistingTargets(t *testing.T) {
	root := sourceTree(t)
	writeFile(t, filepath.Join(root, ModelsDir, "Dog", "keep.obj"), "")

	opts := DefaultOptions()
	opts.Dirs = []string{"Dog"}
	report, err := Setup(root, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Dirs["Dog"] != Skipped {
		t.Errorf("Dirs[Dog] = %q, want skipped", report.Dirs["Dog"])
	}
	if _, err := os.Stat(filepath.Join(root, ModelsDir, "Dog", "a_dog.obj")); err == nil {
		t.Error("existing target was replaced")
	}
}

func TestSetupCopiesWhenLinkFails(t *testing.T) {
	root := sourceTree(t)
	opts := DefaultOptions()
	opts.Dirs = []string{"Dog"}
	opts.Symlink = func(string, string) error { return errors.New("links not permitted") }

	report, err := Setup(root, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Dirs["Dog"] != Copied {
		t.Fatalf("Dirs[Dog] = %q, want copied", report.Dirs["Dog"])
	}

	target := filepath.Join(root, ModelsDir, "Dog")
	for _, name := range []string{"a_dog.obj", "b_dog.obj", "a_dog.mtl"} {
		if _, err := os.Stat(filepath.Join(target, name)); err != nil {
			t.Errorf("%s not copied: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(target, "notes.txt")); err == nil {
		t.Error("unrelated file copied")
	}
}

func TestSetupCopiesSeedPaths(t *testing.T) {
	root := sourceTree(t)
	writeFile(t, filepath.Join(root, SeedPathsFile), `{"Dog": "Dog/seed.obj"}`)

	opts := DefaultOptions()
	opts.Dirs = []string{"Dog"}
	report, err := Setup(root, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.PathsSource != "copied" {
		t.Errorf("PathsSource = %q, want copied", report.PathsSource)
	}
	if report.Paths["Dog"] != "Dog/seed.obj" {
		t.Errorf("Paths = %v", report.Paths)
	}
}
