package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	apperrors "atolye-takip/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	WorkshopCosts(ctx context.Context, from, to string) ([]dto.WorkshopCostReportRowDTO, error)
	WorkshopCostsExcel(ctx context.Context, from, to string) (*bytes.Buffer, error)
}

type ReportService struct {
	costRepo repositories.ModelCostRepositoryInterface
	logger   *zap.Logger
}

func NewReportService(costRepo repositories.ModelCostRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{costRepo: costRepo, logger: logger}
}

func parseReportDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

func (s *ReportService) WorkshopCosts(ctx context.Context, from, to string) ([]dto.WorkshopCostReportRowDTO, error) {
	fromTime, err := parseReportDate(from)
	if err != nil {
		return nil, err
	}
	toTime, err := parseReportDate(to)
	if err != nil {
		return nil, err
	}
	return s.costRepo.GetWorkshopCostReport(ctx, fromTime, toTime)
}

func (s *ReportService) WorkshopCostsExcel(ctx context.Context, from, to string) (*bytes.Buffer, error) {
	rows, err := s.WorkshopCosts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Workshop Costs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Workshop", "Currency", "Records", "Total Cost"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	}

	for i, row := range rows {
		rowNum := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.WorkshopName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.Currency)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.RecordCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.TotalCost)
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("excel export failed", zap.Error(err))
		return nil, err
	}
	return buf, nil
}
