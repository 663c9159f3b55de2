package assets

// TemplateSet holds the html/template sources used to assemble pages.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Layout string // Page shell; calls {{template "content" .}}
	Index  string // Defines "content" for the index page
	Sheet  string // Defines "content" for a sheet page
}

// templateFiles lists the files every template set must provide.
var templateFiles = []string{"layout.html", "index.html", "sheet.html"}

func (ts *TemplateSet) set(file, content string) {
	switch file {
	case "layout.html":
		ts.Layout = content
	case "index.html":
		ts.Index = content
	case "sheet.html":
		ts.Sheet = content
	}
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"
