package phone

import (
	"fmt"
	"io"
	"strings"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/services"
)

// Mark is the verdict one security app reports for a number.
type Mark struct {
	App     string `json:"app"`
	Verdict string `json:"verdict"`
}

// Result holds what is known about one mobile number.
type Result struct {
	Number   string `json:"number"`
	Location string `json:"location,omitempty"`
	Operator string `json:"operator,omitempty"`
	Marks    []Mark `json:"marks,omitempty"`
	Source   string `json:"source"`
}

// IsEmpty reports whether the lookup returned nothing about the number.
func (r *Result) IsEmpty() bool {
	return r.Location == "" && r.Operator == "" && len(r.Marks) == 0
}

// WritePlain writes "number location operator" followed by one line per mark.
func (r *Result) WritePlain(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Number, r.Location, r.Operator); err != nil {
		return err
	}
	for _, m := range r.Marks {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Number, m.App, m.Verdict); err != nil {
			return err
		}
	}
	return nil
}

// WriteText renders the result as a field table.
func (r *Result) WriteText(w io.Writer) error {
	fields := [][2]string{
		{"Number", r.Number},
		{"Location", r.Location},
		{"Operator", r.Operator},
	}
	for _, m := range r.Marks {
		fields = append(fields, [2]string{m.App, m.Verdict})
	}
	fields = append(fields, [2]string{"Source", r.Source})
	return output.WriteFieldTable(w, fields)
}

// MultiResult holds lookups for several numbers.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteText renders all numbers in one table grouped by number.
func (m *MultiResult) WriteText(w io.Writer) error {
	var rows [][]string
	for _, r := range m.Results {
		rows = append(rows, []string{r.Number, "Location", r.Location})
		rows = append(rows, []string{r.Number, "Operator", r.Operator})
		for _, mk := range r.Marks {
			rows = append(rows, []string{r.Number, mk.App, mk.Verdict})
		}
	}
	table := output.NewGroupedWrappingTable(w, 20, 36)
	table.Header([]string{"Number", "Field", "Value"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func aggregate(results []services.Result) *MultiResult {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

func joinLocation(province, city string) string {
	province, city = output.StripANSI(province), output.StripANSI(city)
	if city == province {
		city = ""
	}
	return strings.TrimSpace(province + " " + city)
}
