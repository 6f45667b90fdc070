package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// sheetColumn is one spreadsheet column, named after the record's JSON field.
type sheetColumn struct {
	name string
	kind reflect.Kind
	list bool
}

// sheetColumns lists the columns of a kind's sheet in struct order, base
// fields first.
func sheetColumns(k entity.Kind) []sheetColumn {
	c, err := entity.NewComponent(k)
	if err != nil {
		return nil
	}
	return appendColumns(nil, reflect.TypeOf(c).Elem())
}

func appendColumns(cols []sheetColumn, t reflect.Type) []sheetColumn {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			cols = appendColumns(cols, f.Type)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		col := sheetColumn{name: name, kind: ft.Kind()}
		if ft.Kind() == reflect.Slice {
			col.list = true
			col.kind = ft.Elem().Kind()
		}
		cols = append(cols, col)
	}
	return cols
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "是":
		return true, nil
	case "n", "no", "否":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// decodeRow turns a sheet row into a component of kind k. Header names go
// through the same alias table as JSON keys; cells are coerced by mapRecord.
func decodeRow(k entity.Kind, header []string, row []string) (entity.Component, error) {
	cols := make(map[string]bool)
	for _, c := range sheetColumns(k) {
		cols[c.name] = true
	}

	record := map[string]any{"component_type": k.String()}
	for i, name := range header {
		if i >= len(row) || strings.TrimSpace(row[i]) == "" {
			continue
		}
		name = canonicalField(strings.TrimSpace(name))
		if !cols[name] || name == "component_type" {
			continue
		}
		if _, dup := record[name]; dup {
			continue
		}
		record[name] = strings.TrimSpace(row[i])
	}
	return decodeRecord(k, record)
}

// encodeRow flattens a component into cell values in column order.
func encodeRow(cols []sheetColumn, c entity.Component) ([]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	row := make([]any, len(cols))
	for i, col := range cols {
		switch v := record[col.name].(type) {
		case nil:
			row[i] = nil
		case []any:
			parts := make([]string, len(v))
			for j, p := range v {
				parts[j] = fmt.Sprint(p)
			}
			row[i] = strings.Join(parts, ", ")
		default:
			row[i] = v
		}
	}
	return row, nil
}

func writeSheet(f *excelize.File, sheet string, cols []sheetColumn, components []entity.Component, headerStyle int) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, c := range components {
		row, err := encodeRow(cols, c)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.Info().ObjectID, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", last, 16)
}
