package template_engine

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/tristendillon/approute/core/shared"
)

type TemplateRef struct {
	Path string
}

type TemplateEngine struct {
	funcMap template.FuncMap
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     shared.ToTitle,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"join":      strings.Join,
	}
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{funcMap: getDefaultFuncMap()}
}

// Render executes the referenced template with every sibling template of the
// same directory available to {{ template }}. Output ends in exactly one newline.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) (string, error) {
	name := path.Base(templateRef.Path)
	pattern := path.Join("templates", path.Dir(templateRef.Path), "*.tmpl")

	tmpl, err := template.New(name).Funcs(te.funcMap).ParseFS(TemplateFS, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateRef.Path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateRef.Path, err)
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// GenerateFile renders templateRef to outputPath, creating missing
// directories, and returns the written content.
func (te *TemplateEngine) GenerateFile(templateRef TemplateRef, outputPath string, data interface{}) (string, error) {
	content, err := te.Render(templateRef, data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	return content, nil
}
