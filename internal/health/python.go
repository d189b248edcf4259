package health

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// dangerousCalls are flagged wherever they are called.
var dangerousCalls = map[string]bool{
	"eval":             true,
	"exec":             true,
	"os.system":        true,
	"subprocess.Popen": true,
	"subprocess.call":  true,
	"subprocess.run":   true,
}

// PythonAnalyzer checks Python sources with tree-sitter.
type PythonAnalyzer struct{}

func (PythonAnalyzer) Extensions() []string {
	return []string{".py"}
}

func (PythonAnalyzer) Analyze(ctx context.Context, name string, src []byte) ([]Issue, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return []Issue{{File: name, Line: firstErrorLine(root), Message: "syntax error"}}, nil
	}

	w := &pyWalker{name: name, src: src}
	w.walk(root)

	var issues []Issue
	if !w.imports {
		issues = append(issues, Issue{File: name, Message: "no imports found (might be okay for simple scripts)"})
	}
	return append(issues, w.issues...), nil
}

type pyWalker struct {
	name    string
	src     []byte
	imports bool
	issues  []Issue
}

func (w *pyWalker) text(n *sitter.Node) string {
	return string(w.src[n.StartByte():n.EndByte()])
}

func (w *pyWalker) add(n *sitter.Node, format string, args ...any) {
	w.issues = append(w.issues, Issue{
		File:    w.name,
		Line:    int(n.StartPoint().Row) + 1,
		Message: fmt.Sprintf(format, args...),
	})
}

func (w *pyWalker) walk(n *sitter.Node) {
	switch n.Type() {
	case "import_statement", "import_from_statement", "future_import_statement":
		w.imports = true
	case "call":
		if fn := n.ChildByFieldName("function"); fn != nil {
			if t := fn.Type(); t == "identifier" || t == "attribute" {
				if name := w.text(fn); dangerousCalls[name] {
					w.add(n, "dangerous call: %s", name)
				}
			}
		}
	case "function_definition":
		if onlyPass(n.ChildByFieldName("body")) {
			fname := "?"
			if id := n.ChildByFieldName("name"); id != nil {
				fname = w.text(id)
			}
			w.add(n, "function '%s' is empty (pass)", fname)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i))
	}
}

// onlyPass reports whether a block holds a single pass statement,
// ignoring comments.
func onlyPass(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	var stmts []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if c := body.NamedChild(i); c.Type() != "comment" {
			stmts = append(stmts, c)
		}
	}
	return len(stmts) == 1 && stmts[0].Type() == "pass_statement"
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstErrorLine(c)
		}
	}
	return int(n.StartPoint().Row) + 1
}
