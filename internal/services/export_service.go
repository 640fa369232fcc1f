package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
)

// ExportService renders teacher views as downloadable files: the submission
// status board of one assignment and the full point ledger, each as Excel or
// CSV.
type ExportService interface {
	ExportStatusBoardToExcel(ctx context.Context, assignmentID uint) ([]byte, error)
	ExportStatusBoardToCSV(ctx context.Context, assignmentID uint) ([]byte, error)
	ExportLedgerToExcel(ctx context.Context) ([]byte, error)
	ExportLedgerToCSV(ctx context.Context) ([]byte, error)
}

type exportService struct {
	repo        repositories.Repository
	submissions SubmissionService
	logger      *slog.Logger
}

func NewExportService(repo repositories.Repository, submissions SubmissionService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:        repo,
		submissions: submissions,
		logger:      logger,
	}
}

var statusBoardHeaders = []string{
	"Student ID", "Student Name", "Class", "Submitted", "Score", "Max Score", "Late", "Submitted At",
}

var ledgerHeaders = []string{
	"Student ID", "Username", "Name", "Class", "Status", "Reward Points", "Penalty Points", "Character",
}

// ===== STATUS BOARD =====

func (s *exportService) statusBoardRows(ctx context.Context, assignmentID uint) ([][]string, error) {
	board, err := s.submissions.StatusBoard(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(board.Entries))
	for _, entry := range board.Entries {
		submittedAt := ""
		if entry.SubmittedAt != nil {
			submittedAt = entry.SubmittedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			entry.StudentID,
			entry.StudentName,
			entry.ClassName,
			strconv.FormatBool(entry.Submitted),
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.MaxScore),
			strconv.FormatBool(entry.IsLate),
			submittedAt,
		})
	}
	return rows, nil
}

func (s *exportService) ExportStatusBoardToExcel(ctx context.Context, assignmentID uint) ([]byte, error) {
	rows, err := s.statusBoardRows(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return writeExcel("Submissions", statusBoardHeaders, rows)
}

func (s *exportService) ExportStatusBoardToCSV(ctx context.Context, assignmentID uint) ([]byte, error) {
	rows, err := s.statusBoardRows(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return writeCSV(statusBoardHeaders, rows)
}

// ===== POINT LEDGER =====

func (s *exportService) ledgerRows(ctx context.Context) ([][]string, error) {
	role := models.RoleStudent
	profiles, _, err := s.repo.Profile().List(ctx, repositories.ProfileFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.ID,
			p.Username,
			p.Name,
			p.ClassName,
			string(p.Status),
			strconv.Itoa(p.RewardPoints),
			strconv.Itoa(p.PenaltyPoints),
			p.Character,
		})
	}
	return rows, nil
}

func (s *exportService) ExportLedgerToExcel(ctx context.Context) ([]byte, error) {
	rows, err := s.ledgerRows(ctx)
	if err != nil {
		return nil, err
	}
	return writeExcel("Points", ledgerHeaders, rows)
}

func (s *exportService) ExportLedgerToCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.ledgerRows(ctx)
	if err != nil {
		return nil, err
	}
	return writeCSV(ledgerHeaders, rows)
}

// ===== FILE WRITERS =====

func writeExcel(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
