package httperr

import "errors"

// Business rule codes used by the scheduling engine and lifecycle
// operations. Handlers map these to HTTP statuses; storage faults are
// never wrapped in a BusinessError.
const (
	CodeMissingFields     = "missing_fields"
	CodeInvalidTimeFormat = "invalid_time_format"
	CodeClientNotFound    = "client_not_found"
	CodeClientNotEligible = "client_not_eligible"
	CodeServiceNotFound   = "service_not_found"
	CodeServiceOffline    = "service_unavailable"
	CodePastDate          = "past_date"
	CodeOutsideHours      = "outside_operating_hours"
	CodeAllRoomsBooked    = "all_rooms_booked"
	CodeInvalidState      = "invalid_state"
	CodeNotFound          = "appointment_not_found"
	CodeUnconfigured      = "settings_not_configured"
	CodeInvalidSettings   = "invalid_settings"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when err
// is a storage/internal fault.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
