package templates

import (
	"embed"
	"html/template"
	"net/url"
)

//go:embed *.html
var htmlFiles embed.FS

var Listing,
	Meal *template.Template

// Init parses the embedded templates. Call it once at startup before serving.
// stylePath is where the page stylesheet is served from.
func Init(stylePath string) error {
	funcs := template.FuncMap{
		"pathEscape": url.PathEscape,
		"stylesheet": func() string { return stylePath },
	}
	tmpls, err := template.New("all").Funcs(funcs).ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Listing = ensure(tmpls, "listing.html")
	Meal = ensure(tmpls, "meal.html")
	return nil
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}
