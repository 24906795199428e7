package mutator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/parser"
	"github.com/tristendillon/approute/core/project"
	"github.com/tristendillon/approute/core/shared"
	"github.com/tristendillon/approute/core/template_engine"
)

type CreateResult struct {
	Path        string
	LogicalPath string
	Method      string
	Line        int
	Outcome     Outcome
}

// typedSymbols are imported from next/server by generated typed handlers.
var typedSymbols = []string{"NextRequest", "NextResponse"}

type handlerData struct {
	Method  string
	Path    string
	Symbols []string
}

// Create ensures a handler for the requested method exists at the route
// described by raw (`/<segments>[:<METHOD>]`). An existing handler for the
// method is reported as OutcomeMethodExists and the file is left untouched.
func (m *Mutator) Create(raw string) (*CreateResult, error) {
	in, err := m.parse(raw)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(append([]string{m.routeRoot}, in.Segments...)...)

	result := &CreateResult{LogicalPath: in.LogicalPath(), Method: in.Method}
	data := handlerData{Method: in.Method, Path: result.LogicalPath, Symbols: typedSymbols}

	var content string
	if existing, ok := project.FindHandlerFile(dir); ok {
		result.Path = existing
		src, err := os.ReadFile(existing)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", existing, err)
		}

		for _, h := range parser.ParseSource(string(src)) {
			if h.Method == in.Method {
				result.Line = h.Line
				result.Outcome = OutcomeMethodExists
				logger.Info("%s already declares %s", existing, in.Method)
				return result, nil
			}
		}

		content, err = m.appendHandler(string(src), project.IsTypedExtension(filepath.Ext(existing)), data)
		if err != nil {
			return nil, err
		}
		if err := writeFile(existing, content, fileMode(existing)); err != nil {
			return nil, err
		}
		result.Outcome = OutcomeAppended
	} else {
		ext := project.DominantExtension(m.projectDir, m.routeRoot, m.cfg.Create.SampleLimit, m.cfg.ExcludeNames())
		result.Path = filepath.Join(dir, "route."+ext)

		ref := template_engine.TEMPLATES.ROUTE.JS_FILE
		if project.IsTypedExtension(ext) {
			ref = template_engine.TEMPLATES.ROUTE.TS_FILE
		}
		content, err = m.engine.GenerateFile(ref, result.Path, data)
		if err != nil {
			return nil, err
		}
		result.Outcome = OutcomeCreated
	}

	for _, h := range parser.ParseSource(content) {
		if h.Method == in.Method {
			result.Line = h.Line
		}
	}

	logger.Info("%s %s handler for %s in %s", shared.ToTitle(result.Outcome.String()), in.Method, result.LogicalPath, result.Path)
	m.host.Refresh()
	m.host.Open(result.Path, result.Line)
	return result, nil
}

// appendHandler adds the generated handler to src. In typed files the
// next/server symbols the handler uses are imported first unless an existing
// import already binds them.
func (m *Mutator) appendHandler(src string, typed bool, data handlerData) (string, error) {
	ref := template_engine.TEMPLATES.ROUTE.JS_HANDLER
	if typed {
		ref = template_engine.TEMPLATES.ROUTE.TS_HANDLER
		if missing := unboundSymbols(src, data.Symbols); len(missing) > 0 {
			imp, err := m.engine.Render(template_engine.TEMPLATES.ROUTE.TS_IMPORT, handlerData{Symbols: missing})
			if err != nil {
				return "", err
			}
			src = insertImports(src, []string{strings.TrimSpace(imp)})
		}
	}

	handler, err := m.engine.Render(ref, data)
	if err != nil {
		return "", err
	}
	return appendBlocks(src, []string{strings.TrimRight(handler, "\n")}), nil
}

// unboundSymbols returns the symbols no import statement of src binds.
func unboundSymbols(src string, symbols []string) []string {
	var imports []string
	for _, imp := range parser.Imports(src) {
		imports = append(imports, imp.Text)
	}
	joined := strings.Join(imports, "\n")

	var missing []string
	for _, sym := range symbols {
		if !regexp.MustCompile(`\b` + regexp.QuoteMeta(sym) + `\b`).MatchString(joined) {
			missing = append(missing, sym)
		}
	}
	return missing
}
