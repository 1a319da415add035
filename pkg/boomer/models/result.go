package models

// PartRef is a designator with its comment.
type PartRef struct {
	Designator string `json:"designator"`
	Comment    string `json:"comment"`
}

// CommentMismatch is a part present in both files with differing comments.
type CommentMismatch struct {
	Designator   string `json:"designator"`
	BOMComment   string `json:"bom_comment"`
	PnPComment   string `json:"pnp_comment"`
	PnPFootprint string `json:"pnp_footprint,omitempty"`
}

// ProximityConflict is a pair of same-side PnP parts placed too close together.
type ProximityConflict struct {
	DesignatorA string  `json:"designator_a"`
	DesignatorB string  `json:"designator_b"`
	DistanceMM  float64 `json:"distance_mm"`
}

// Result is the outcome of one cross-check.
type Result struct {
	// BOMOnly lists BOM parts missing in the PnP.
	BOMOnly []PartRef `json:"bom_only"`
	// PnPOnly lists PnP parts missing in the BOM.
	PnPOnly []PartRef `json:"pnp_only"`
	// CommentMismatches lists parts whose comments differ.
	CommentMismatches []CommentMismatch `json:"comment_mismatches"`
	// ProximityConflicts lists PnP parts closer than the minimum distance.
	ProximityConflicts []ProximityConflict `json:"proximity_conflicts"`
}

// Clean reports whether no discrepancy was found.
func (r *Result) Clean() bool {
	return len(r.BOMOnly) == 0 && len(r.PnPOnly) == 0 &&
		len(r.CommentMismatches) == 0 && len(r.ProximityConflicts) == 0
}
