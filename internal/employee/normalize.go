package employee

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"employee-portal/models"
)

// Positions of the fields inside an array-shaped row:
// [name, designation, city, ?, ?, salaryRaw].
const (
	colName        = 0
	colDesignation = 1
	colCity        = 2
	colSalary      = 5
)

// Placeholders used when an array row leaves a field empty.
const (
	DefaultName        = "N/A"
	DefaultDesignation = "Employee"
	DefaultCity        = "Unknown"
	DefaultSalary      = "0"
)

var salaryFormatting = strings.NewReplacer("$", "", ",", "")

// Normalize converts a raw table-data response into employee records.
//
// Accepted shapes, checked in order: {"TABLE_DATA":{"data":[...]}}, a bare
// array, and {"data":[...]}. Anything else, including invalid JSON, yields an
// empty slice. Malformed rows never fail the whole response.
func Normalize(raw []byte) []models.Employee {
	rows := extractRows(raw)
	employees := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, normalizeRow(row))
	}
	return employees
}

func extractRows(raw []byte) []json.RawMessage {
	switch firstByte(raw) {
	case '[':
		return decodeArray(raw)
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil
		}
		if table, ok := wrapper["TABLE_DATA"]; ok && firstByte(table) == '{' {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(table, &inner); err == nil {
				if data, ok := inner["data"]; ok && firstByte(data) == '[' {
					return decodeArray(data)
				}
			}
		}
		if data, ok := wrapper["data"]; ok && firstByte(data) == '[' {
			return decodeArray(data)
		}
	}
	return nil
}

func decodeArray(raw []byte) []json.RawMessage {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	return rows
}

func normalizeRow(row json.RawMessage) models.Employee {
	switch firstByte(row) {
	case '[':
		var cells []interface{}
		if err := json.Unmarshal(row, &cells); err != nil {
			return models.Employee{}
		}
		return fromCells(cells)
	case '{':
		var fields map[string]interface{}
		if err := json.Unmarshal(row, &fields); err != nil {
			return models.Employee{}
		}
		return fromObject(fields)
	default:
		return models.Employee{}
	}
}

func fromCells(cells []interface{}) models.Employee {
	e := models.Employee{
		Name:        cellOr(cells, colName, DefaultName),
		Designation: cellOr(cells, colDesignation, DefaultDesignation),
		City:        cellOr(cells, colCity, DefaultCity),
		Salary:      DefaultSalary,
	}
	if salary := StripCurrency(cellOr(cells, colSalary, "")); salary != "" {
		e.Salary = models.Salary(salary)
	}
	return e
}

// fromObject keeps object rows as they are; missing fields stay empty and
// the views pick their own fallbacks.
func fromObject(fields map[string]interface{}) models.Employee {
	return models.Employee{
		Name:        scalarString(fields["name"]),
		Designation: scalarString(fields["designation"]),
		City:        scalarString(fields["city"]),
		Salary:      models.SalaryFromValue(fields["salary"]),
		Role:        scalarString(fields["role"]),
	}
}

// StripCurrency removes the dollar sign and thousands separators.
func StripCurrency(s string) string {
	return salaryFormatting.Replace(s)
}

func cellOr(cells []interface{}, idx int, fallback string) string {
	if idx >= len(cells) || !truthy(cells[idx]) {
		return fallback
	}
	// nested arrays and objects have no display text
	if v := scalarString(cells[idx]); v != "" {
		return v
	}
	return fallback
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case bool:
		return val
	default:
		return true
	}
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
