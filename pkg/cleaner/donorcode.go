// pkg/cleaner/donorcode.go
package cleaner

import "strings"

const (
	alumniMarker     = "Alumni"
	nonDegreedMarker = "Non-Degreed"
	// Donor codes are "<Subtype>, <Type>" pairs separated by a literal
	// comma-space. The hyphen inside "Non-Degreed" is not a field
	// separator and must never be split on.
	pairSeparator = ", "
)

// ConvertDonorLabel maps a fine-grained donor code to its coarser
// reporting label.
//
// Labels containing "Alumni" without "Non-Degreed" all collapse into
// the single "Alumni" category. Every other label of the shape
// "<A>, <B>" is reordered to "<B> <A>"; labels without a comma-space
// pair pass through unchanged.
func ConvertDonorLabel(label string) string {
	isAlumniException := strings.Contains(label, alumniMarker) &&
		!strings.Contains(label, nonDegreedMarker)
	if isAlumniException {
		return alumniMarker
	}

	parts := strings.SplitN(label, pairSeparator, 2)
	if len(parts) != 2 {
		return label
	}
	return parts[1] + " " + parts[0]
}
