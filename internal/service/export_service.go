package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Форматы выгрузки каталога
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

var exportHeaders = []string{"ID", "Вопрос", "Ответ", "Категория", "Сложность"}

// ExportService выгружает весь каталог вопросов в CSV или Excel
type ExportService struct {
	questions  *QuestionService
	categories *CategoryService
}

// NewExportService создает сервис выгрузки
func NewExportService(questions *QuestionService, categories *CategoryService) *ExportService {
	return &ExportService{questions: questions, categories: categories}
}

// ContentType возвращает MIME-тип для формата; неизвестный формат трактуется как CSV
func ContentType(format string) string {
	if format == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Export пишет каталог в w в порядке (category, id)
func (s *ExportService) Export(w io.Writer, format string) error {
	rows, err := s.rows()
	if err != nil {
		return err
	}

	switch format {
	case ExportFormatXLSX:
		return writeXLSX(w, rows)
	default:
		return writeCSV(w, rows)
	}
}

// rows готовит строки выгрузки без заголовка
func (s *ExportService) rows() ([][]string, error) {
	questions, err := s.questions.Filter(SearchCriteria{})
	if err != nil {
		return nil, err
	}
	names, err := s.categories.Names()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(q.ID), 10),
			sanitizeForExcel(q.Text),
			sanitizeForExcel(q.Answer),
			sanitizeForExcel(names[strconv.FormatUint(uint64(q.CategoryID), 10)]),
			strconv.Itoa(q.Difficulty),
		})
	}
	return rows, nil
}

// writeCSV пишет CSV с BOM для корректного отображения UTF-8 в Excel
func writeCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write csv bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// writeXLSX пишет Excel через StreamWriter
func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		id, _ := strconv.Atoi(r[0])
		difficulty, _ := strconv.Atoi(r[4])
		row := []interface{}{id, r[1], r[2], r[3], difficulty}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ExportService] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush xlsx: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
