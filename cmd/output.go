package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tristendillon/approute/core/models"
	"gopkg.in/yaml.v3"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Bold(true)
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	methodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf(format, args...)))
}

// confirm asks a yes/no question on w and reads the answer from r.
// Anything but y or yes is a no.
func confirm(r io.Reader, w io.Writer, message string) bool {
	fmt.Fprint(w, promptStyle.Render(message)+" "+hintStyle.Render("[y/N]")+": ")

	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// renderTree writes the forest as an indented tree of logical paths.
func renderTree(w io.Writer, f *models.Forest) {
	if f.Len() == 0 {
		fmt.Fprintln(w, kindStyle.Render("no routes"))
		return
	}
	roots := f.Roots()
	for i, idx := range roots {
		renderNode(w, f, idx, "", i == len(roots)-1, true)
	}
}

func renderNode(w io.Writer, f *models.Forest, idx int, prefix string, last, top bool) {
	route := &f.Routes[idx]

	connector, childPrefix := "├── ", prefix+"│   "
	if last {
		connector, childPrefix = "└── ", prefix+"    "
	}
	if top {
		connector, childPrefix = "", ""
	}

	methods := make([]string, len(route.Handlers))
	for i, h := range route.Handlers {
		methods[i] = methodStyle.Render(h.Method)
	}
	fmt.Fprintf(w, "%s%s%s %s %s\n", prefix, connector,
		pathStyle.Render(route.APIPath),
		kindStyle.Render("("+route.Kind.String()+")"),
		strings.Join(methods, " "))

	children := f.Children(idx)
	for i, child := range children {
		renderNode(w, f, child, childPrefix, i == len(children)-1, false)
	}
}

type handlerView struct {
	Method string `json:"method" yaml:"method"`
	Line   int    `json:"line" yaml:"line"`
}

type routeView struct {
	Path     string        `json:"path" yaml:"path"`
	File     string        `json:"file" yaml:"file"`
	Kind     string        `json:"kind" yaml:"kind"`
	Parent   string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Handlers []handlerView `json:"handlers" yaml:"handlers"`
}

// routeViews flattens the forest for machine-readable output. Files are
// relative to base.
func routeViews(f *models.Forest, base string) []routeView {
	views := make([]routeView, 0, f.Len())
	for _, r := range f.Routes {
		file := r.FilePath
		if rel, err := filepath.Rel(base, file); err == nil {
			file = filepath.ToSlash(rel)
		}
		view := routeView{
			Path:     r.APIPath,
			File:     file,
			Kind:     r.Kind.String(),
			Handlers: make([]handlerView, len(r.Handlers)),
		}
		if r.Parent >= 0 {
			view.Parent = f.Routes[r.Parent].APIPath
		}
		for i, h := range r.Handlers {
			view.Handlers[i] = handlerView{Method: h.Method, Line: h.Line}
		}
		views = append(views, view)
	}
	return views
}

func writeForest(w io.Writer, f *models.Forest, base, format string) error {
	switch format {
	case "tree":
		renderTree(w, f)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(routeViews(f, base))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(routeViews(f, base)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want tree, json or yaml)", format)
	}
}
