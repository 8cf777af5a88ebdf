package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/tailscale/hujson"

	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/ui"
)

// fileTemplate renders a JSONC document the config overlay reader accepts
const fileTemplate = `// {{.Tool}} {{.Version}} effective options
// mode: {{.Mode}}
// run: {{.RunID}}
// cmdline: {{.Cmdline}}
{
{{- range .Groups}}
	// {{.Title}}
{{- range .Fields}}
	{{.Key}}: {{.Value}},
{{- end}}
{{- end}}
}
`

var optionsFile = template.Must(template.New("options").Parse(fileTemplate))

// TemplateData is passed to the options file template
type TemplateData struct {
	Tool    string
	Version string
	Mode    string
	RunID   string
	Cmdline string
	Groups  []fileGroup
}

type fileGroup struct {
	Title  string
	Fields []fileField
}

type fileField struct {
	Key   string // JSON-quoted option name
	Value string // JSON-encoded value
}

// WriteFile writes o as a commented JSONC options file. Reading the file back
// with parser.ReadOverlay and resolving it for the same mode yields o again,
// apart from the provenance fields.
func WriteFile(w io.Writer, o *options.Options) error {
	data, err := buildTemplateData(o)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := optionsFile.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render options file: %w", err)
	}

	v, err := hujson.Parse(buf.Bytes())
	if err != nil {
		return fmt.Errorf("rendered options file is not valid JSONC: %w", err)
	}
	v.Format()

	if _, err := w.Write(v.Pack()); err != nil {
		return fmt.Errorf("failed to write options file: %w", err)
	}
	return nil
}

// SaveFile writes o to path, creating parent directories as needed
func SaveFile(path string, o *options.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		ui.Verbosef("failed to create output directory: %s", filepath.Dir(path))
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteFile(&buf, o); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		ui.Verbosef("failed to write options file: %s", path)
		return fmt.Errorf("failed to write options file: %w", err)
	}

	ui.Verbosef("saved options: path=%s, size=%s", path, ui.FormatBytes(buf.Len()))
	return nil
}

func buildTemplateData(o *options.Options) (TemplateData, error) {
	s, err := options.BuildSchema(o.Mode)
	if err != nil {
		return TemplateData{}, err
	}
	values := o.Values()

	data := TemplateData{
		Tool:    options.ToolName,
		Version: options.ToolVersion,
		Mode:    o.Mode.String(),
		RunID:   o.Provenance.RunID,
		Cmdline: o.Provenance.Cmdline,
	}
	for _, g := range options.Groups {
		group := fileGroup{Title: Title(g)}
		for _, d := range s.InGroup(g) {
			if d.Transient {
				continue
			}
			key, err := json.Marshal(d.Name)
			if err != nil {
				return TemplateData{}, err
			}
			value, err := json.Marshal(values[d.Name])
			if err != nil {
				return TemplateData{}, fmt.Errorf("failed to encode %s: %w", d.Name, err)
			}
			group.Fields = append(group.Fields, fileField{Key: string(key), Value: string(value)})
		}
		if len(group.Fields) > 0 {
			data.Groups = append(data.Groups, group)
		}
	}
	return data, nil
}
