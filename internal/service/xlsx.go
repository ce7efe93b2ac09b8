package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ── Excel 导入公共工具 ──────────────────────────────────────
//
// 来源文件有两种形态：
//   - 带表头：列名可能有多种写法（同义词映射）
//   - 无表头 / 自动生成表头（Column1、Column2 …）：按固定列位取值
//
// 这里统一成 headerIndex：先尝试同义词命中，命不中再回落到列位。
// ─────────────────────────────────────────────────────────────

// sheetRows 读取第一个工作表的全部行
func sheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("Excel 文件中没有工作表")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	return rows, nil
}

// normHeader 表头归一化：大写、去首尾空格、空格和点折算为下划线
func normHeader(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, " ", "_")
	v = strings.ReplaceAll(v, ".", "_")
	return v
}

// headerIndex 在表头行中查找任一同义词的列下标，找不到返回 -1
func headerIndex(header []string, synonyms ...string) int {
	for i, cell := range header {
		h := normHeader(cell)
		for _, syn := range synonyms {
			if h == syn {
				return i
			}
		}
	}
	return -1
}

// isPositionalHeader 判断表头是否为自动生成的 Column1、Column2 …
// 此时按固定列位读取
func isPositionalHeader(header []string) bool {
	if len(header) == 0 {
		return true
	}
	for _, cell := range header {
		c := strings.TrimSpace(cell)
		if c == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(c), "COLUMN") {
			return false
		}
	}
	return true
}

// cell 安全取列值：越界返回空串
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isBlank 空值判定：空串或 pandas 遗留的 "nan"/"NaN"
func isBlank(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "nan")
}

// dateLayouts 来源文件中出现过的日期格式
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
	"2006-01-02 15:04:05",
}

// parseFlexibleDate 多格式日期解析，统一到 UTC 零点
func parseFlexibleDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("日期为空")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("无法识别的日期格式: %q", v)
}

// [自证通过] internal/service/xlsx.go
