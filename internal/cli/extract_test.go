package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bonfie-erp/schemactl/pkg/schemactl"
)

func TestExtract_Markers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", cliInit)

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql")

	assert.Equal(t, schemactl.ExitSuccess, code, stderr)
	want := "-- PART 2: 初始資料\nINSERT INTO public.roles (id) VALUES (9);\n"
	assert.Equal(t, want, stdout)
	assert.Contains(t, stderr, fmt.Sprintf("Strategy: markers (%d bytes at ", len(want)))
}

func TestExtract_StatementScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", "SELECT 1;\nINSERT INTO public.classrooms (classroom_id)\nVALUES ('R1');\nSELECT 2;")

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql")

	assert.Equal(t, schemactl.ExitSuccess, code, stderr)
	assert.Equal(t, "INSERT INTO public.classrooms (classroom_id)\nVALUES ('R1');\n", stdout)
	assert.Contains(t, stderr, "Strategy: statement-scan")
}

func TestExtract_CustomMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", "x\n-- BEGIN\nseed;\n-- END\ny\n")

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql",
		"--start-marker", "-- BEGIN", "--end-marker", "-- END")

	assert.Equal(t, schemactl.ExitSuccess, code, stderr)
	assert.Equal(t, "-- BEGIN\nseed;\n", stdout)
}

func TestExtract_EndMarkerBeforeStart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", "-- END\nINSERT INTO public.roles (id) VALUES (1);\n-- BEGIN\nSELECT 1;\n")

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql",
		"--start-marker", "-- BEGIN", "--end-marker", "-- END")

	assert.Equal(t, schemactl.ExitSuccess, code, stderr)
	assert.Equal(t, "INSERT INTO public.roles (id) VALUES (1);\n", stdout)
	assert.Contains(t, stderr, "Strategy: statement-scan")
}

func TestExtract_InitNotUTF8(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", "-- PART 2: \xb3\xf5\xa9l\xb8\xea\xae\xc6\nINSERT INTO public.roles (id) VALUES (9);\n")

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql")

	assert.Equal(t, schemactl.ExitInvalidEncoding, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "init.sql: invalid UTF-8 at byte 11")
}

func TestExtract_NothingFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "init.sql", "SELECT 1;\n")

	code, stdout, stderr := runCLI(t, dir, "extract", "--init", "init.sql")

	assert.Equal(t, schemactl.ExitSuccess, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[WARN] No bootstrap section found")
}

func TestExtract_MissingInit(t *testing.T) {
	code, _, _ := runCLI(t, t.TempDir(), "extract")
	assert.Equal(t, schemactl.ExitInputMissing, code)
}
