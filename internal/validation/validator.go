package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with struct-level rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// media links are stored as one comma-separated cell with no escaping,
	// so a link containing a comma would split into garbage on read-back.
	// Reject it at the boundary rather than corrupt the cell.
	v.RegisterStructValidation(reportCaseStructValidation, ReportCaseRequest{})

	return v
}

func reportCaseStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(ReportCaseRequest)
	for _, link := range req.MediaLinks {
		if strings.Contains(link, ",") {
			sl.ReportError(req.MediaLinks, "media_links", "MediaLinks", "no_embedded_commas", link)
			return
		}
	}
}
