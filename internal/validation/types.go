package validation

// ReportCaseRequest is the payload for POST /cases. The server assigns the
// case id and timestamp; submitters only describe the problem.
type ReportCaseRequest struct {
	Location    string   `json:"location" validate:"required"`
	Equipment   string   `json:"equipment" validate:"required"`
	Description string   `json:"description" validate:"required"`
	MediaLinks  []string `json:"media_links,omitempty" validate:"omitempty,dive,url"`
}

// UpdateStatusRequest is the payload for POST /cases/:id/status. Status is
// free text by contract — the advisory vocabulary is offered to clients via
// GET /statuses but deliberately not enforced here, since the store does
// not enforce it either.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty"`
}
