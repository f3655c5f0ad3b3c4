package idcard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
	"github.com/dossier-cli/dossier/internal/services/idcard"
	"github.com/dossier-cli/dossier/internal/testutil"
)

const validID = "110101199003070011"

func newService(day string) *idcard.Service {
	return idcard.NewService(testutil.NopLogger(), idcard.WithClock(testutil.FixedClock(day)))
}

func TestService_Metadata(t *testing.T) {
	svc := idcard.NewService(testutil.NopLogger())
	assert.Equal(t, "idcard", svc.Name())
	assert.Equal(t, pap.RED, svc.PAP())
}

func TestRun_Valid(t *testing.T) {
	raw, err := newService("2024-03-07").Run(context.Background(), validID)
	require.NoError(t, err)

	result, ok := raw.(*idcard.Result)
	require.True(t, ok, "expected *idcard.Result")
	assert.Equal(t, &idcard.Result{
		Input:          validID,
		BirthDate:      "1990-03-07",
		Gender:         "male",
		ProvinceCode:   "11",
		Province:       "北京市",
		Age:            34,
		CheckCharacter: "1",
	}, result)
	assert.False(t, result.IsEmpty())
}

func TestRun_AgeUsesClock(t *testing.T) {
	raw, err := newService("2024-03-06").Run(context.Background(), validID)
	require.NoError(t, err)
	assert.Equal(t, 33, raw.(*idcard.Result).Age)
}

func TestRun_TrimsWhitespace(t *testing.T) {
	raw, err := newService("2024-03-07").Run(context.Background(), "  "+validID+"\n")
	require.NoError(t, err)
	assert.Equal(t, validID, raw.(*idcard.Result).Input)
}

func TestRun_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short", "11010119900307001", idnum.ErrStructure},
		{"letters", "11010119900307001A", idnum.ErrStructure},
		{"empty", "", idnum.ErrStructure},
		{"bad date", "110101199002300011", idnum.ErrDate},
		{"bad check", "110101199003070012", idnum.ErrChecksum},
	}
	svc := newService("2024-03-07")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Run(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, services.ErrInvalidInput)
		})
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newService("2024-03-07").Run(ctx, validID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookup_ExplicitReference(t *testing.T) {
	svc := idcard.NewService(testutil.NopLogger())
	res, err := svc.Lookup(validID, time.Date(2000, 3, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 10, res.Age)
}

func TestWithRegistry(t *testing.T) {
	reg := idnum.NewRegistry([]idnum.Province{{Code: "11", Name: "Capital"}})
	svc := idcard.NewService(testutil.NopLogger(), idcard.WithRegistry(reg), idcard.WithClock(testutil.FixedClock("2024-01-01")))
	raw, err := svc.Run(context.Background(), validID)
	require.NoError(t, err)
	assert.Equal(t, "Capital", raw.(*idcard.Result).Province)
}

func TestResult_JSON(t *testing.T) {
	raw, err := newService("2024-03-07").Run(context.Background(), validID)
	require.NoError(t, err)

	data, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"110101199003070011","birth_date":"1990-03-07","gender":"male",
		"province_code":"11","province":"北京市","age":34,"check_character":"1"}`, string(data))
}

func TestResult_WritePlain(t *testing.T) {
	raw, err := newService("2024-03-07").Run(context.Background(), validID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, raw.(*idcard.Result).WritePlain(&buf))
	assert.Equal(t, "110101199003070011\t1990-03-07\tmale\t北京市\t34\t1\n", buf.String())
}

func TestResult_WriteText(t *testing.T) {
	raw, err := newService("2024-03-07").Run(context.Background(), validID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, raw.(*idcard.Result).WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "1990-03-07")
	assert.Contains(t, out, "北京市 (11)")
}

func TestAggregateResults(t *testing.T) {
	svc := newService("2024-03-07")
	a, err := svc.Run(context.Background(), validID)
	require.NoError(t, err)

	agg := svc.AggregateResults([]services.Result{a, a})
	mr, ok := agg.(*idcard.MultiResult)
	require.True(t, ok)
	assert.Len(t, mr.Results, 2)
	assert.False(t, mr.IsEmpty())

	var buf bytes.Buffer
	require.NoError(t, mr.WriteText(&buf))
	assert.Contains(t, buf.String(), validID)

	data, err := json.Marshal(mr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"birth_date":"1990-03-07"`)
}
