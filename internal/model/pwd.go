package model

import "time"

// PWDRecord mirrors the `pwd_records` table. It is the core beneficiary
// record; guardian, education and support-need rows hang off it by pwd_id.
type PWDRecord struct {
	ID                     uint64       // pwd_records.id
	UserID                 uint64       // pwd_records.user_id (creating user)
	Quarter                Quarter      // pwd_records.quarter
	Year                   int          // pwd_records.year
	FullName               string       // pwd_records.full_name
	Gender                 Gender       // pwd_records.gender
	Phone                  string       // pwd_records.phone
	Email                  string       // pwd_records.email
	Address                string       // pwd_records.address
	DisabilityCategoryID   uint64       // pwd_records.disability_category_id
	DisabilityTypeID       uint64       // pwd_records.disability_type_id
	CommunityID            uint64       // pwd_records.community_id
	AssistanceTypeNeededID uint64       // pwd_records.assistance_type_needed_id
	SupportDescription     string       // pwd_records.support_description
	SupportingDocuments    string       // pwd_records.supporting_documents (comma-separated paths)
	Status                 RecordStatus // pwd_records.status
	CreatedAt              time.Time    // pwd_records.created_at
	UpdatedAt              time.Time    // pwd_records.updated_at
}

// Guardian mirrors the `guardians` table. At most one row per PWD record.
type Guardian struct {
	ID           uint64    `json:"id"`
	PWDID        uint64    `json:"pwd_id"`
	FullName     string    `json:"full_name"`
	Relationship string    `json:"relationship"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Education mirrors the `educations` table. At most one row per PWD record.
type Education struct {
	ID         uint64    `json:"id"`
	PWDID      uint64    `json:"pwd_id"`
	Level      string    `json:"level"`
	SchoolName string    `json:"school_name"`
	YearEnded  string    `json:"year_ended"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SupportNeed mirrors the `support_needs` table. A PWD record may have any
// number of support-need rows.
type SupportNeed struct {
	ID        uint64    `json:"id"`
	PWDID     uint64    `json:"pwd_id"`
	Need      string    `json:"need"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
