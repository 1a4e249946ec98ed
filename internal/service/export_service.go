package service

import (
	"ai_tutor_backend/internal/util"
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService 学习状态评分导出为 Excel (.xlsx)。
// 以 bytes.Buffer 返回，由控制器设置响应头后写出。
type ExportService struct {
	scores ScoreReader
}

func NewExportService(scores ScoreReader) *ExportService {
	return &ExportService{scores: scores}
}

var scoreExportHeaders = []string{"ID", "用户名", "时间戳", "问题深度", "响应及时性", "纠正主动性", "情感参与度", "总分"}

// ExportScores 生成某学生全部评分记录的 Excel 表
func (s *ExportService) ExportScores(studentName string) (*bytes.Buffer, string, error) {
	records, err := s.scores.FindAllByStudent(studentName)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", util.ErrNoEvaluation
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range scoreExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, rec := range records {
		values := []interface{}{
			rec.ID,
			rec.StudentName,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.QuestionDepth,
			rec.ResponseTimeliness,
			rec.CorrectionProactivity,
			rec.EmotionalEngagement,
			rec.TotalScore,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", util.Storage("生成 Excel 文件失败", err)
	}

	filename := fmt.Sprintf("%s_conversation_scores.xlsx", studentName)
	return buf, filename, nil
}
