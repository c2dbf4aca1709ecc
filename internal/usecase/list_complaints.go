package usecase

import (
	"context"
	"fmt"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// ListComplaintsUseCase returns the records served by GET /api/complaints.
type ListComplaintsUseCase struct {
	reader domain.ComplaintReader
}

func NewListComplaintsUseCase(reader domain.ComplaintReader) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{reader: reader}
}

// List never returns a nil slice on success so the response is always a JSON array.
func (uc *ListComplaintsUseCase) List(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := uc.reader.ListComplaints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}
