package generator

// Template data structures

type artifactTemplateData struct {
	Header    string
	Marker    string
	PagesName string
	AppName   string
	Pages     string
	App       string
}

// Ambient declarations template
var declarationsTemplate = `{{.Header}}
{{.Marker}}

export type {{.PagesName}} = {{.Pages}};

export type {{.AppName}} = {{.App}};
`

// Runtime constants template
var constantsTemplate = `{{.Header}}
{{.Marker}}

export const {{.PagesName}} = {{.Pages}} as const;

export const {{.AppName}} = {{.App}} as const;
`
