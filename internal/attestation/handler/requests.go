package handler

import (
	"strings"
	"time"

	contracts "attestry/contracts/attestation"
	"attestry/internal/abi"
	"attestry/internal/attestation/service"
	id "attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

// HTTP Request DTOs - contain JSON tags for API serialization.
// These are converted to service commands before processing.

// maxPayloadElements bounds how many serialized elements one attestation may
// carry over the API.
const maxPayloadElements = 4096

type DependencyRequest struct {
	Instance string `json:"instance"`
	ID       uint64 `json:"id"`
}

// CreateAttestationRequest carries a pre-serialized payload: one 0x-hex word
// per element, exactly as the schema's serializer emits them. The engine
// decodes the sequence against the schema before storing it.
type CreateAttestationRequest struct {
	Subject      string              `json:"subject"`
	Elements     []string            `json:"elements"`
	ExpiresAt    *time.Time          `json:"expires_at,omitempty"`
	Dependencies []DependencyRequest `json:"dependencies,omitempty"`
}

func (r *CreateAttestationRequest) Normalize() {
	if r == nil {
		return
	}
	r.Subject = strings.TrimSpace(r.Subject)
	for i, e := range r.Elements {
		r.Elements[i] = strings.TrimSpace(e)
	}
	for i, d := range r.Dependencies {
		r.Dependencies[i].Instance = strings.TrimSpace(d.Instance)
	}
}

func (r *CreateAttestationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Subject == "" {
		return dErrors.New(dErrors.CodeValidation, "subject is required")
	}
	if len(r.Elements) == 0 {
		return dErrors.New(dErrors.CodeValidation, "elements are required")
	}
	if len(r.Elements) > maxPayloadElements {
		return dErrors.New(dErrors.CodeValidation, "too many payload elements")
	}
	for _, d := range r.Dependencies {
		if d.Instance == "" {
			return dErrors.New(dErrors.CodeValidation, "dependency instance is required")
		}
		if d.ID == 0 {
			return dErrors.New(dErrors.CodeValidation, "dependency id cannot be zero")
		}
	}
	return nil
}

// ToCommand converts the request into a service command for the given
// authenticated attester.
func (r *CreateAttestationRequest) ToCommand(attester id.Address) (*service.CreateCommand, error) {
	subject, err := id.ParseAddress(r.Subject)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid subject address")
	}

	elements := make([]abi.Word, len(r.Elements))
	for i, e := range r.Elements {
		elements[i], err = abi.ParseWord(e)
		if err != nil {
			return nil, err
		}
	}

	deps := make([]contracts.Dependency, len(r.Dependencies))
	for i, d := range r.Dependencies {
		deps[i] = contracts.Dependency{Instance: d.Instance, ID: id.AttestationID(d.ID)}
	}

	cmd := &service.CreateCommand{
		Attester:     attester,
		Subject:      subject,
		Elements:     elements,
		Dependencies: deps,
	}
	if r.ExpiresAt != nil {
		cmd.ExpiresAt = *r.ExpiresAt
	}
	return cmd, nil
}
