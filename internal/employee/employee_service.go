package employee

import (
	"context"
	"log"

	"employee-portal/models"
)

// Fetcher returns the raw table-data body.
type Fetcher interface {
	FetchTableData(ctx context.Context) ([]byte, error)
}

type EmployeeService struct {
	fetcher Fetcher
}

func NewEmployeeService(fetcher Fetcher) *EmployeeService {
	return &EmployeeService{fetcher: fetcher}
}

// FindAll fetches the dataset and normalizes it. Transport failures are
// logged and returned so the caller can show its error state.
func (s *EmployeeService) FindAll(ctx context.Context) ([]models.Employee, error) {
	raw, err := s.fetcher.FetchTableData(ctx)
	if err != nil {
		log.Printf("Error fetching employee table data: %v", err)
		return nil, err
	}

	employees := Normalize(raw)
	log.Printf("Fetched %d employee records", len(employees))
	return employees, nil
}
