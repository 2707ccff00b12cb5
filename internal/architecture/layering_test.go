package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "studytrack/internal/modules/"

// layers lists the package kinds inside a module, most specific first.
var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// forbidden names the same-module layers each layer must not reach into.
var forbidden = map[string][]string{
	"usecase": {"adapter"},
	"service": {"adapter", "usecase"},
	"domain":  {"adapter", "usecase", "service"},
}

type sourceFile struct {
	path    string
	imports []string
}

func collect(t *testing.T, dir string, withTests bool) []sourceFile {
	t.Helper()
	fset := token.NewFileSet()
	var files []sourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
			return err
		}
		if !withTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		f := sourceFile{path: filepath.ToSlash(path)}
		for _, imp := range node.Imports {
			f.imports = append(f.imports, strings.Trim(imp.Path.Value, `"`))
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return files
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, f := range collect(t, filepath.Join("..", "modules"), false) {
		module, layer := locate(f.path)
		if module == "" || layer == "" {
			continue
		}
		for _, imp := range f.imports {
			if !strings.HasPrefix(imp, modulePrefix) {
				continue
			}
			if reason := checkImport(module, layer, imp); reason != "" {
				t.Errorf("%s (%s) imports %s: %s", f.path, layer, imp, reason)
			}
		}
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	for _, f := range collect(t, filepath.Join("..", "platform"), true) {
		for _, imp := range f.imports {
			if strings.HasPrefix(imp, modulePrefix) || strings.HasPrefix(imp, "studytrack/internal/ui") {
				t.Errorf("platform package %s imports %s", f.path, imp)
			}
		}
	}
}

func TestCheckImportRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		allowed            bool
	}{
		{"goal", "adapter/out", modulePrefix + "session/port/in", true},
		{"goal", "usecase", modulePrefix + "progress/dto", true},
		{"goal", "usecase", modulePrefix + "session/usecase", false},
		{"goal", "adapter/in", modulePrefix + "goal/usecase", false},
		{"goal", "usecase", modulePrefix + "goal/adapter/out", false},
		{"goal", "service", modulePrefix + "goal/usecase", false},
		{"goal", "domain", modulePrefix + "goal/service", false},
		{"goal", "usecase", modulePrefix + "goal/service", true},
	}
	for _, tc := range cases {
		got := checkImport(tc.module, tc.layer, tc.imp) == ""
		if got != tc.allowed {
			t.Errorf("%s/%s -> %s: allowed=%v, want %v", tc.module, tc.layer, tc.imp, got, tc.allowed)
		}
	}
}

// locate returns the module name and layer for a path below internal/modules.
func locate(path string) (module, layer string) {
	_, rest, ok := strings.Cut(path, "modules/")
	if !ok {
		return "", ""
	}
	module, inner, ok := strings.Cut(rest, "/")
	if !ok {
		return "", ""
	}
	for _, l := range layers {
		if strings.HasPrefix(inner, l+"/") {
			return module, l
		}
	}
	return module, ""
}

func kindOf(imp string) string {
	_, layer := locate(strings.TrimPrefix(imp, "studytrack/internal/") + "/")
	return layer
}

// checkImport explains why imp is not allowed from module/layer, or returns "".
func checkImport(module, layer, imp string) string {
	target := kindOf(imp)
	public := target == "port/in" || target == "dto"
	if !strings.HasPrefix(imp, modulePrefix+module+"/") {
		if public {
			return ""
		}
		return "other modules are reachable only through port/in and dto"
	}
	if layer == "adapter/in" && !public {
		return "inbound adapters talk to port/in and dto only"
	}
	for _, f := range forbidden[layer] {
		if target == f || strings.HasPrefix(target, f+"/") {
			return layer + " must not depend on " + f
		}
	}
	return ""
}
