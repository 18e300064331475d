package handler

import (
	"time"

	"attestry/internal/attestation/models"
	"attestry/internal/attestation/service"
	id "attestry/pkg/domain"
)

type RegisterSchemaResponse struct {
	InstanceID string `json:"instance_id"`
	Name       string `json:"name"`
	Version    uint32 `json:"version"`
	FieldCount int    `json:"field_count"`
}

type SchemaListResponse struct {
	Instances []string `json:"instances"`
}

type DependencyResponse struct {
	Instance string `json:"instance"`
	ID       uint64 `json:"id"`
}

type AttestationResponse struct {
	ID            uint64               `json:"id"`
	Attester      string               `json:"attester"`
	Subject       string               `json:"subject"`
	SchemaName    string               `json:"schema_name"`
	SchemaVersion uint32               `json:"schema_version"`
	PayloadHash   string               `json:"payload_hash"`
	Elements      []string             `json:"elements"`
	Dependencies  []DependencyResponse `json:"dependencies,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`
	Revoked       bool                 `json:"revoked"`
	RevokedAt     *time.Time           `json:"revoked_at,omitempty"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}

type IDListResponse struct {
	AttestationIDs []uint64 `json:"attestation_ids"`
}

// Response mapping functions - convert domain objects to HTTP DTOs

func toRegisterSchemaResponse(inst *service.Instance) *RegisterSchemaResponse {
	return &RegisterSchemaResponse{
		InstanceID: inst.ID().String(),
		Name:       inst.InstanceName(),
		Version:    inst.Schema().Version,
		FieldCount: inst.ABI().FieldCount(),
	}
}

func toAttestationResponse(record *models.AttestationRecord) *AttestationResponse {
	resp := &AttestationResponse{
		ID:            uint64(record.ID),
		Attester:      record.Attester.String(),
		Subject:       record.Subject.String(),
		SchemaName:    record.SchemaName,
		SchemaVersion: record.SchemaVersion,
		PayloadHash:   record.PayloadHash,
		Elements:      make([]string, len(record.Payload)),
		CreatedAt:     record.CreatedAt,
		Revoked:       record.Revoked,
	}
	for i, w := range record.Payload {
		resp.Elements[i] = w.String()
	}
	for _, d := range record.Dependencies {
		resp.Dependencies = append(resp.Dependencies, DependencyResponse{
			Instance: d.Instance,
			ID:       uint64(d.ID),
		})
	}
	if !record.ExpiresAt.IsZero() {
		expires := record.ExpiresAt
		resp.ExpiresAt = &expires
	}
	if record.Revoked {
		revoked := record.RevokedAt
		resp.RevokedAt = &revoked
	}
	return resp
}

func toIDListResponse(ids []id.AttestationID) *IDListResponse {
	out := &IDListResponse{AttestationIDs: make([]uint64, len(ids))}
	for i, attID := range ids {
		out.AttestationIDs[i] = uint64(attID)
	}
	return out
}
