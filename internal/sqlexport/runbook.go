package sqlexport

import (
	_ "embed"
	"strings"
	"text/template"

	"cosmetic-platform-dataset/internal/seed"
)

//go:embed runbook.md.tmpl
var runbookSource string

var runbookTemplate = template.Must(template.New("runbook").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(runbookSource))

type runbookTable struct {
	Name string
	Rows int
}

type runbookData struct {
	TableCount    int
	RowCount      int
	Bundle        string
	Policies      string
	Tables        []runbookTable
	BodyPartsNext int
}

// RenderRunbook renders the operator README for ds
func RenderRunbook(ds *seed.Dataset) (string, error) {
	data := runbookData{
		TableCount: len(ds.Tables()),
		RowCount:   ds.TotalRows(),
		Bundle:     BundleFile,
		Policies:   PoliciesFile,
	}
	for _, t := range ds.Tables() {
		data.Tables = append(data.Tables, runbookTable{Name: t.Spec.Name, Rows: len(t.Rows)})
	}
	if t, ok := ds.Table("body_parts"); ok {
		data.BodyPartsNext = t.MaxID() + 1
	}

	var b strings.Builder
	if err := runbookTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
