package models

// OHADA accounting classification codes used to categorize income and
// expense entries. Standard codes are seeded by migration; Custom ones
// are created on demand.
const (
	OhadaTypeIncome  = "income"
	OhadaTypeExpense = "expense"

	OhadaClassStandard = "standard"
	OhadaClassCustom   = "custom"
)

type OhadaCode struct {
	ID             string  `json:"id" db:"id"`
	Code           string  `json:"code" db:"code"`
	Name           string  `json:"name" db:"name"`
	Description    *string `json:"description,omitempty" db:"description"`
	Type           string  `json:"type" db:"type"`
	Classification string  `json:"classification" db:"classification"`
}
