package mutator

import (
	"strings"

	"github.com/tristendillon/approute/core/parser"
)

// Merge folds the handlers and imports of source into target and returns the
// new target content. Imports missing from target are inserted after its last
// import; handlers for methods target does not declare are appended verbatim.
// Target wins on conflicting methods. The merge is textual: aliased imports
// or unusual declaration styles are not recognised, so results need review.
func Merge(source, target string) string {
	declared := make(map[string]bool)
	for _, h := range parser.ParseSource(target) {
		declared[h.Method] = true
	}

	var imports []string
	for _, imp := range parser.Imports(source) {
		if !strings.Contains(target, imp.Text) {
			imports = append(imports, imp.Text)
		}
	}

	var blocks []string
	for _, block := range parser.HandlerBlocks(source) {
		if declared[block.Method] {
			continue
		}
		declared[block.Method] = true
		blocks = append(blocks, block.Text)
	}

	return appendBlocks(insertImports(target, imports), blocks)
}

func insertImports(content string, imports []string) string {
	if len(imports) == 0 {
		return content
	}

	existing := parser.Imports(content)
	if len(existing) == 0 {
		if strings.TrimSpace(content) == "" {
			return strings.Join(imports, "\n") + "\n"
		}
		return strings.Join(imports, "\n") + "\n\n" + content
	}

	lines := parser.SplitLines(content)
	last := existing[len(existing)-1].End

	out := make([]string, 0, len(lines)+len(imports))
	out = append(out, lines[:last+1]...)
	out = append(out, imports...)
	out = append(out, lines[last+1:]...)
	return strings.Join(out, "\n") + "\n"
}

func appendBlocks(content string, blocks []string) string {
	if len(blocks) == 0 {
		return content
	}
	content = strings.TrimRight(content, "\n")
	if content != "" {
		content += "\n\n"
	}
	return content + strings.Join(blocks, "\n\n") + "\n"
}
