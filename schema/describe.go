package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/envguard/util"
)

// WriteMarkdown renders the schema as a markdown table, one row per
// variable. Defaults of sensitive variables are masked.
func (s *Schema) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("| Variable | Type | Required | Default | Dev default | Choices | Description |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, d := range s.Vars {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %s | %s |\n",
			d.Name,
			d.Type,
			d.requirement(),
			d.display(d.Default),
			d.display(d.DevDefault),
			cell(strings.Join(d.Choices, ", ")),
			cell(d.description()),
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (d Definition) requirement() string {
	switch {
	case d.Optional:
		return "no"
	case d.DevTestOnly != nil && d.Default != nil:
		return "in development (stubbed in test)"
	case d.TestOnly != nil, d.DevTestOnly != nil:
		return "yes (stubbed in test)"
	case d.Default != nil:
		return "no"
	default:
		return "yes"
	}
}

func (d Definition) display(value *string) string {
	if value == nil {
		return ""
	}
	if d.Sensitive {
		return util.MaskSecret(*value, 0)
	}
	if *value == "" {
		return `""`
	}
	return cell("`" + *value + "`")
}

func (d Definition) description() string {
	parts := util.Filter([]string{d.Desc, example(d.Example), docs(d.Docs)}, func(s string) bool { return s != "" })
	return strings.Join(parts, " ")
}

func example(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("(eg. `%s`)", s)
}

func docs(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("[docs](%s)", s)
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}
