package employee

import (
	"bytes"
	"testing"

	"employee-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, []models.Employee{
		{Name: "Asha", Designation: "Manager", City: "Pune", Salary: "1200"},
		{Name: "Ravi", Role: "Contractor", Salary: "$1,200"},
	})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	assert.Equal(t, "Employees", file.GetSheetName(0))

	rows, err := file.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Name", "Designation", "City", "Salary"}, rows[0])
	assert.Equal(t, []string{"1", "Asha", "Manager", "Pune", "1200"}, rows[1])
	assert.Equal(t, []string{"2", "Ravi", "Contractor", "", "$1,200"}, rows[2])

	cellType, err := file.GetCellType("Employees", "E2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows("Employees")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
