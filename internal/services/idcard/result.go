package idcard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dossier-cli/dossier/internal/output"
)

// Result is the parsed form of one identity number.
type Result struct {
	Input          string `json:"input"`
	BirthDate      string `json:"birth_date"`
	Gender         string `json:"gender"`
	ProvinceCode   string `json:"province_code"`
	Province       string `json:"province"`
	Age            int    `json:"age"`
	CheckCharacter string `json:"check_character"`
}

// IsEmpty reports whether the result carries no parsed identity.
func (r *Result) IsEmpty() bool { return r.BirthDate == "" }

// WritePlain writes one tab-separated line per identity.
func (r *Result) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
		r.Input, r.BirthDate, r.Gender, r.Province, r.Age, r.CheckCharacter)
	return err
}

// WriteText renders the result as a field table.
func (r *Result) WriteText(w io.Writer) error {
	return output.WriteFieldTable(w, [][2]string{
		{"Input", r.Input},
		{"Birth Date", r.BirthDate},
		{"Gender", r.Gender},
		{"Province", r.Province + " (" + r.ProvinceCode + ")"},
		{"Age", strconv.Itoa(r.Age)},
		{"Check Character", r.CheckCharacter},
	})
}
