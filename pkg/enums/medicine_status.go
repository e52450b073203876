package enums

import "fmt"

// MedicineStatus marks whether a medicine may still be sold.
type MedicineStatus string

const (
	MedicineStatusActive       MedicineStatus = "ACTIVE"
	MedicineStatusDiscontinued MedicineStatus = "DISCONTINUED"
)

var validMedicineStatuses = []MedicineStatus{
	MedicineStatusActive,
	MedicineStatusDiscontinued,
}

// String implements fmt.Stringer.
func (m MedicineStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MedicineStatus.
func (m MedicineStatus) IsValid() bool {
	for _, candidate := range validMedicineStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMedicineStatus converts raw input into a MedicineStatus.
func ParseMedicineStatus(value string) (MedicineStatus, error) {
	for _, candidate := range validMedicineStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid medicine status %q", value)
}
