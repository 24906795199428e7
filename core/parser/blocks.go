package parser

import (
	"regexp"
	"strings"
)

var (
	requireDecl    = regexp.MustCompile(`^\s*(?:const|let|var)\s+.+=\s*require\(`)
	statementStart = regexp.MustCompile(`^\s*(?:export|import|const|let|var|function|class|async\s+function)\b`)
)

// Statement is a contiguous run of source lines, End inclusive.
type Statement struct {
	Method string
	Text   string
	Start  int
	End    int
}

// IsImportLine reports whether line opens an import or require declaration.
func IsImportLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import{") ||
		strings.HasPrefix(trimmed, "import'") || strings.HasPrefix(trimmed, `import"`) {
		return true
	}
	return requireDecl.MatchString(line)
}

// Imports returns every import statement in src. A statement whose braces open
// on the first line runs until they close, covering multi-line named imports.
func Imports(src string) []Statement {
	lines := SplitLines(src)
	var imports []Statement

	for i := 0; i < len(lines); i++ {
		if !IsImportLine(lines[i]) {
			continue
		}
		end := i
		depth := strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		for depth > 0 && end+1 < len(lines) {
			end++
			depth += strings.Count(lines[end], "{") - strings.Count(lines[end], "}")
		}
		imports = append(imports, Statement{
			Text:  strings.Join(lines[i:end+1], "\n"),
			Start: i,
			End:   end,
		})
		i = end
	}
	return imports
}

// HandlerBlocks returns the full text span of every method handler in src.
// A block runs from its declaration line until brace depth returns to zero;
// a declaration without braces ends at the first line closing the statement,
// or before the next line that opens a new declaration. Braces inside strings,
// comments or template literals are counted as code.
func HandlerBlocks(src string) []Statement {
	lines := SplitLines(src)
	var blocks []Statement

	for i := 0; i < len(lines); i++ {
		method, ok := MatchHandler(lines[i])
		if !ok {
			continue
		}

		end := i
		depth := 0
		sawBrace := false
		for j := i; j < len(lines); j++ {
			if j > i && !sawBrace && statementStart.MatchString(lines[j]) {
				break
			}
			opens := strings.Count(lines[j], "{")
			closes := strings.Count(lines[j], "}")
			depth += opens - closes
			if opens > 0 || closes > 0 {
				sawBrace = true
			}
			end = j
			if sawBrace && depth <= 0 {
				break
			}
			if !sawBrace && strings.HasSuffix(strings.TrimSpace(lines[j]), ";") {
				break
			}
		}

		for end > i && strings.TrimSpace(lines[end]) == "" {
			end--
		}

		blocks = append(blocks, Statement{
			Method: method,
			Text:   strings.Join(lines[i:end+1], "\n"),
			Start:  i,
			End:    end,
		})
		i = end
	}
	return blocks
}

// SplitLines splits on '\n' and drops one trailing empty line.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
