package idcard

import (
	"io"
	"strconv"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/services"
)

// MultiResult holds parsed identities for several inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteText renders one row per identity.
func (m *MultiResult) WriteText(w io.Writer) error {
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, []string{r.Input, r.BirthDate, r.Gender, r.Province, strconv.Itoa(r.Age)})
	}
	table := output.NewWrappingTable(w, 12, 40)
	table.Header([]string{"Input", "Birth Date", "Gender", "Province", "Age"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
