package trial

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type trialDef struct {
	session string
	no      int
	index   int
	name    string
	status  string // only written when the header carries Status
}

var baseHeader = []string{"Session", "TrialNo", "TrialIndex", "TrialName", "Time(ms)", "Encl 1"}

// buildRecords lays out trialLen rows for each entry in defs. Encl 1 ramps with the row
// number and is offset by the trial number so every trial is distinct.
func buildRecords(trialLen int, withStatus bool, defs ...trialDef) [][]string {
	header := append([]string(nil), baseHeader...)
	if withStatus {
		header = append(header, "Status")
	}
	out := [][]string{header}
	for _, s := range defs {
		for i := 0; i < trialLen; i++ {
			rec := []string{
				s.session,
				strconv.Itoa(s.no),
				strconv.Itoa(s.index),
				s.name,
				strconv.FormatFloat(float64(i)*2, 'f', -1, 64),
				strconv.FormatFloat(float64(s.no)+float64(i%5)*0.25, 'f', -1, 64),
			}
			if withStatus {
				rec = append(rec, s.status)
			}
			out = append(out, rec)
		}
	}
	return out
}

func mustTable(t *testing.T, trialLen int, defs ...trialDef) *Table {
	t.Helper()
	tbl, err := FromRecords(buildRecords(trialLen, false, defs...), trialLen)
	require.NoError(t, err)
	return tbl
}

func writeCSVFile(t *testing.T, records [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trials.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, f.Close())
	return path
}

func statuses(tbl *Table) []Status {
	out := make([]Status, 0, tbl.TotalTrials())
	for _, b := range tbl.Blocks() {
		out = append(out, tbl.BlockStatus(b))
	}
	return out
}

func tones(n int) []trialDef {
	defs := make([]trialDef, n)
	for i := range defs {
		defs[i] = trialDef{session: "S1", no: i + 1, index: i + 1, name: "tone"}
	}
	return defs
}
