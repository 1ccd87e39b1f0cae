package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestExport(t *testing.T) (*ExportService, *QuestionService) {
	t.Helper()
	svc, _ := newTestCatalog(t)
	return NewExportService(svc, svc.categories), svc
}

func TestExportService_CSV(t *testing.T) {
	exporter, svc := newTestExport(t)
	_, err := svc.CreateQuestion(CreateQuestionInput{
		Question: "=HYPERLINK(\"x\")", Answer: "+1", CategoryID: 2, Difficulty: 3,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, ExportFormatCSV))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "ожидается BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 17) // заголовок + 16 вопросов
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"1", "Question number 1", "Answer", "Science", "2"}, records[1])

	// Новый вопрос категории 2 идет после вопросов 6..10
	assert.Equal(t, []string{"16", "'=HYPERLINK(\"x\")", "'+1", "Art", "3"}, records[11])
}

func TestExportService_XLSX(t *testing.T) {
	exporter, _ := newTestExport(t)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, ExportFormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Вопросы")
	require.NoError(t, err)
	require.Len(t, rows, 16)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"15", "Question number 15", "Answer", "Geography", "2"}, rows[15])
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType("csv"))
	assert.Equal(t, "text/csv; charset=utf-8", ContentType("unknown"))
	assert.Contains(t, ContentType("xlsx"), "spreadsheetml")
}

func TestSanitizeForExcel(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"plain":    "plain",
		"=SUM(A1)": "'=SUM(A1)",
		"-1":       "'-1",
		"@cmd":     "'@cmd",
		"a=b":      "a=b",
		"\tindent": "'\tindent",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeForExcel(in), "input %q", in)
	}
}
