package api

import (
	"github.com/phrazzld/rolodex-api/internal/domain"
)

// CreateRecordRequest defines the payload for POST /users.
type CreateRecordRequest struct {
	ID      string `json:"id"      validate:"required,notblank,max=10"`
	Name    string `json:"name"    validate:"required,notblank,max=100"`
	Phone   string `json:"phone"   validate:"required,notblank,max=30"`
	Address string `json:"address" validate:"required,notblank,max=255"`
	// Remark is optional.
	Remark string `json:"remark" validate:"max=500"`
}

// ToDomain converts the request into a domain record.
func (r CreateRecordRequest) ToDomain() domain.Record {
	return domain.Record{
		ID:      r.ID,
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Remark:  r.Remark,
	}
}

// UpdateRecordRequest defines the payload for PUT /users/{id}. Every mutable
// field is overwritten, so omitting remark clears it.
type UpdateRecordRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=100"`
	Phone   string `json:"phone"   validate:"required,notblank,max=30"`
	Address string `json:"address" validate:"required,notblank,max=255"`
	Remark  string `json:"remark"  validate:"max=500"`
}

// ToDomain converts the request into the mutable record fields.
func (r UpdateRecordRequest) ToDomain() domain.RecordFields {
	return domain.RecordFields{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Remark:  r.Remark,
	}
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
