package model

import "time"

// AssistanceRequest mirrors the `assistance_requests` table. Each request is
// raised against an existing beneficiary (pwd_records row) by an
// authenticated user and moves through the RequestStatus workflow.
type AssistanceRequest struct {
	ID               uint64        // assistance_requests.id
	AssistanceTypeID uint64        // assistance_requests.assistance_type_id
	BeneficiaryID    uint64        // assistance_requests.beneficiary_id (-> pwd_records.id)
	RequestedBy      uint64        // assistance_requests.requested_by (-> users.id)
	Description      string        // assistance_requests.description
	Amount           float64       // assistance_requests.amount (estimated cost)
	AdminReviewNotes string        // assistance_requests.admin_review_notes
	Status           RequestStatus // assistance_requests.status
	CreatedAt        time.Time     // assistance_requests.created_at
	UpdatedAt        time.Time     // assistance_requests.updated_at
}
