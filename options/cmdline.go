package options

import (
	"regexp"
	"strings"
)

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_./:,+@%=-]+$`)

// ReconstructCmdline renders every effective option of o as a command line
// that resolves to the same record. Booleans and strings equal to their
// default and inactive reporting counts are left out. An empty string that
// overrides a default is written as --name=''.
func ReconstructCmdline(o *Options) string {
	s, err := BuildSchema(o.Mode)
	if err != nil {
		return ToolBin
	}
	values := o.Values()

	parts := []string{ToolBin, o.Mode.String()}
	for _, d := range s.Definitions {
		if d.Transient {
			continue
		}
		switch v := values[d.Name].(type) {
		case bool:
			switch {
			case v:
				parts = append(parts, "--"+d.Name)
			case d.Default != false:
				parts = append(parts, "--"+d.Name+"=false")
			}
		case string:
			if v != d.Default {
				parts = append(parts, "--"+d.Name+"="+shellQuote(v))
			}
		case int:
			if v == 0 && d.Group == GroupReporting {
				continue
			}
			parts = append(parts, "--"+d.Name+"="+Format(v))
		default:
			parts = append(parts, "--"+d.Name+"="+Format(v))
		}
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
