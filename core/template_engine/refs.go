package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS

type routeTemplates struct {
	TS_FILE    TemplateRef
	JS_FILE    TemplateRef
	TS_HANDLER TemplateRef
	JS_HANDLER TemplateRef
	TS_IMPORT  TemplateRef
}

var TEMPLATES = struct {
	ROUTE routeTemplates
}{
	ROUTE: routeTemplates{
		TS_FILE:    TemplateRef{Path: "route/route.ts.tmpl"},
		JS_FILE:    TemplateRef{Path: "route/route.js.tmpl"},
		TS_HANDLER: TemplateRef{Path: "route/handler.ts.tmpl"},
		JS_HANDLER: TemplateRef{Path: "route/handler.js.tmpl"},
		TS_IMPORT:  TemplateRef{Path: "route/import.ts.tmpl"},
	},
}
