package resolve

import (
	"fmt"
	"io"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/services"
)

// Result holds what a domain resolves to.
type Result struct {
	Domain string   `json:"domain"`
	Rcode  string   `json:"rcode,omitempty"`
	CNAME  []string `json:"cname,omitempty"`
	A      []string `json:"a,omitempty"`
	AAAA   []string `json:"aaaa,omitempty"`
	Source string   `json:"source"`
}

// IsEmpty reports whether the domain resolved to nothing.
func (r *Result) IsEmpty() bool {
	return len(r.CNAME) == 0 && len(r.A) == 0 && len(r.AAAA) == 0
}

func (r *Result) rows() [][]string {
	var rows [][]string
	for _, v := range r.CNAME {
		rows = append(rows, []string{"CNAME", v})
	}
	for _, v := range r.A {
		rows = append(rows, []string{"A", v})
	}
	for _, v := range r.AAAA {
		rows = append(rows, []string{"AAAA", v})
	}
	return rows
}

// WritePlain writes one "TYPE value" line per record.
func (r *Result) WritePlain(w io.Writer) error {
	for _, row := range r.rows() {
		if _, err := fmt.Fprintf(w, "%s %s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteText renders the records as a table grouped by type.
func (r *Result) WriteText(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 20, 20)
	table.Header([]string{"Type", "Value"})
	if err := table.Bulk(r.rows()); err != nil {
		return err
	}
	return table.Render()
}

// MultiResult holds resolutions for several domains.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteText renders all domains in one table grouped by domain and type.
func (m *MultiResult) WriteText(w io.Writer) error {
	var rows [][]string
	for _, r := range m.Results {
		for _, row := range r.rows() {
			rows = append(rows, []string{r.Domain, row[0], row[1]})
		}
	}
	table := output.NewGroupedWrappingTable(w, 20, 30)
	table.Header([]string{"Domain", "Type", "Value"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
