package models

import "fmt"

// ReferencePolicy decides what deleting a person or category does to the
// transactions that point at it.
type ReferencePolicy string

const (
	// ReferenceOrphan deletes the row and leaves transactions dangling.
	ReferenceOrphan ReferencePolicy = "orphan"
	// ReferenceRestrict refuses the delete while transactions exist.
	ReferenceRestrict ReferencePolicy = "restrict"
	// ReferenceCascade deletes the dependent transactions too.
	ReferenceCascade ReferencePolicy = "cascade"
)

// ParseReferencePolicy accepts the configuration spelling; "" means orphan.
func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	switch p := ReferencePolicy(s); p {
	case ReferenceOrphan, ReferenceRestrict, ReferenceCascade:
		return p, nil
	case "":
		return ReferenceOrphan, nil
	}
	return "", fmt.Errorf("unknown reference policy %q", s)
}
