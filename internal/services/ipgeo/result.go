package ipgeo

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/services"
)

// Result is the location of one IP address.
type Result struct {
	IP          string  `json:"ip"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Region      string  `json:"region,omitempty"`
	City        string  `json:"city,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone,omitempty"`
	ISP         string  `json:"isp,omitempty"`
	Org         string  `json:"org,omitempty"`
	ASN         string  `json:"asn,omitempty"`
	Source      string  `json:"source"`
}

// IsEmpty reports whether no location was found.
func (r *Result) IsEmpty() bool { return r.CountryCode == "" && r.City == "" }

func (r *Result) coordinates() string {
	if r.Latitude == 0 && r.Longitude == 0 {
		return ""
	}
	return strconv.FormatFloat(r.Latitude, 'f', 4, 64) + ", " + strconv.FormatFloat(r.Longitude, 'f', 4, 64)
}

// WritePlain writes "ip country_code region city" on one tab-separated line.
func (r *Result) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.IP, r.CountryCode, r.Region, r.City)
	return err
}

// WriteText renders the result as a field table.
func (r *Result) WriteText(w io.Writer) error {
	country := r.Country
	if r.CountryCode != "" {
		country += " (" + r.CountryCode + ")"
	}
	return output.WriteFieldTable(w, [][2]string{
		{"IP", r.IP},
		{"Country", country},
		{"Region", r.Region},
		{"City", r.City},
		{"Coordinates", r.coordinates()},
		{"Timezone", r.Timezone},
		{"ISP", r.ISP},
		{"Org", r.Org},
		{"ASN", r.ASN},
		{"Source", r.Source},
	})
}

// MultiResult holds locations for several addresses.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteText renders one row per address.
func (m *MultiResult) WriteText(w io.Writer) error {
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, []string{r.IP, r.CountryCode, r.Region, r.City, r.ASN})
	}
	table := output.NewWrappingTable(w, 12, 40)
	table.Header([]string{"IP", "Country", "Region", "City", "ASN"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
