package model

// Community is a lookup row in the `communities` table. Names are unique.
type Community struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DisabilityCategory is a lookup row in the `disability_categories` table.
type DisabilityCategory struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DisabilityType is a lookup row in the `disability_types` table. Every type
// belongs to exactly one category; records referencing a type must reference
// the same category.
type DisabilityType struct {
	ID         uint64 `json:"id"`
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
}

// AssistanceType is a lookup row in the `assistance_types` table.
type AssistanceType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
