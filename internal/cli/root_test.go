package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/services"
)

const validID = "110101199003070011"

// execute runs the command tree against a private config file.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	return executeWithConfig(t, cfgPath, stdin, args...)
}

func executeWithConfig(t *testing.T, cfgPath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIDCard_Text(t *testing.T) {
	out, _, err := execute(t, "", "idcard", "--at", "2024-03-07", validID)
	require.NoError(t, err)
	assert.Contains(t, out, "1990-03-07")
	assert.Contains(t, out, "北京市 (11)")
	assert.Contains(t, out, "male")
	assert.Contains(t, out, "34")
}

func TestIDCard_JSON(t *testing.T) {
	out, _, err := execute(t, "", "-o", "json", "idcard", "--at", "2024-03-06", validID)
	require.NoError(t, err)

	var got struct {
		Input          string `json:"input"`
		BirthDate      string `json:"birth_date"`
		Gender         string `json:"gender"`
		ProvinceCode   string `json:"province_code"`
		Province       string `json:"province"`
		Age            int    `json:"age"`
		CheckCharacter string `json:"check_character"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, validID, got.Input)
	assert.Equal(t, "1990-03-07", got.BirthDate)
	assert.Equal(t, "male", got.Gender)
	assert.Equal(t, "11", got.ProvinceCode)
	assert.Equal(t, "北京市", got.Province)
	assert.Equal(t, 33, got.Age)
	assert.Equal(t, "1", got.CheckCharacter)
}

func TestIDCard_Plain(t *testing.T) {
	out, _, err := execute(t, "", "-o", "plain", "idcard", "--at", "2024-03-07", validID)
	require.NoError(t, err)
	assert.Equal(t, validID+"\t1990-03-07\tmale\t北京市\t34\t1\n", out)
}

func TestIDCard_Rejected(t *testing.T) {
	out, _, err := execute(t, "", "idcard", "110101199003070012")
	require.ErrorIs(t, err, idnum.ErrChecksum)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Empty(t, out)
}

func TestIDCard_BadAt(t *testing.T) {
	_, _, err := execute(t, "", "idcard", "--at", "07/03/2024", validID)
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestIDCard_StdinBulk(t *testing.T) {
	stdin := "# ids\n" + validID + "\n\n110101199002300011\n"
	out, stderr, err := execute(t, stdin, "-o", "plain", "idcard", "--at", "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, validID+"\t1990-03-07\tmale\t北京市\t34\t1\n", out)
	assert.Contains(t, stderr, "lookup failed")
	assert.NotContains(t, stderr, "110101199002300011")
}

func TestIDCard_AllInputsFailed(t *testing.T) {
	_, _, err := execute(t, "", "idcard", "123", "456")
	require.ErrorIs(t, err, idnum.ErrStructure)
	assert.Contains(t, err.Error(), "all 2 inputs failed")
}

func TestNoInput_EmptyStdin(t *testing.T) {
	_, _, err := execute(t, "", "idcard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin was empty")
}

func TestPhone_BlockedByPAP(t *testing.T) {
	_, _, err := execute(t, "", "--pap-limit", "red", "phone", "13800138000")
	require.ErrorIs(t, err, services.ErrPAPBlocked)
}

func TestPhone_InvalidNumber(t *testing.T) {
	_, _, err := execute(t, "", "phone", "12345")
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestPhone_BadAPI(t *testing.T) {
	_, _, err := execute(t, "", "phone", "--api", "carrier", "13800138000")
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestIPGeo_RejectsPrivate(t *testing.T) {
	_, _, err := execute(t, "", "ipgeo", "192.168.1.1")
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestResolve_RejectsNonDomain(t *testing.T) {
	_, _, err := execute(t, "", "resolve", "not a domain")
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestConcurrencyMustBePositive(t *testing.T) {
	_, _, err := execute(t, "", "--concurrency", "0", "idcard", validID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--concurrency")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := execute(t, "", "-o", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestServices_JSON(t *testing.T) {
	out, _, err := execute(t, "", "-o", "json", "services")
	require.NoError(t, err)

	var got []serviceEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, allServices(), got)
}

func TestServices_Plain(t *testing.T) {
	out, _, err := execute(t, "", "-o", "plain", "services")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(allServices()))
	assert.Equal(t, "idcard\toffline (34 provinces)\tred", lines[0])
}

func TestAllServices_Order(t *testing.T) {
	var names []string
	for _, e := range allServices() {
		names = append(names, e.Name+"/"+e.PAP)
	}
	assert.Equal(t, []string{
		"idcard/red",
		"ipgeo/amber",
		"ipgeo/red",
		"phone/amber",
		"phone-address/amber",
		"resolve/amber",
		"resolve/green",
	}, names)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dossier version "), out)

	out, _, err = execute(t, "", "-o", "json", "version")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

func TestConfig_SetGetUnset(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := executeWithConfig(t, cfgPath, "", "config", "set", "pap-limit", "amber")
	require.NoError(t, err)

	out, _, err := executeWithConfig(t, cfgPath, "", "config", "get", "pap_limit")
	require.NoError(t, err)
	assert.Equal(t, "amber\n", out)

	// The persisted limit applies to lookups: the system resolver is GREEN.
	_, _, err = executeWithConfig(t, cfgPath, "", "resolve", "--system", "example.com")
	require.ErrorIs(t, err, services.ErrPAPBlocked)

	_, _, err = executeWithConfig(t, cfgPath, "", "config", "unset", "pap_limit")
	require.NoError(t, err)

	out, _, err = executeWithConfig(t, cfgPath, "", "config", "get", "pap_limit")
	require.NoError(t, err)
	assert.Equal(t, "white\n", out)

	info, err := os.Stat(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfig_FlagOverridesFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("pap_limit: red\n"), 0o600))

	_, _, err := executeWithConfig(t, cfgPath, "", "phone", "13800138000")
	require.ErrorIs(t, err, services.ErrPAPBlocked)

	out, _, err := executeWithConfig(t, cfgPath, "", "--pap-limit", "green", "config", "get", "pap-limit")
	require.NoError(t, err)
	assert.Equal(t, "green\n", out)
}

func TestConfig_UnknownKey(t *testing.T) {
	_, _, err := execute(t, "", "config", "set", "colour", "blue")
	require.Error(t, err)
}

func TestConfig_Path(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	out, _, err := executeWithConfig(t, cfgPath, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)
}

func TestServe_PrintClientConfig(t *testing.T) {
	out, _, err := execute(t, "", "serve", "--print-client-config")
	require.NoError(t, err)

	var cfg struct {
		MCPServers map[string]struct {
			Command string   `json:"command"`
			Args    []string `json:"args"`
		} `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	entry, ok := cfg.MCPServers["dossier"]
	require.True(t, ok)
	assert.NotEmpty(t, entry.Command)
	assert.Equal(t, []string{"serve"}, entry.Args)
}

func TestCompletion_SkipsConfig(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	// An invalid output format fails any command that resolves deps.
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "-o", "xml", "completion", "bash"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "dossier")
}
