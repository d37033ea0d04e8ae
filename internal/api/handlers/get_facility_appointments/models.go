package get_facility_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров
func ToServiceRequest(
	facilityID, userID int64,
	appointmentTypeIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string,
) (*models.GetFacilityAppointmentsRequest, error) {
	req := &models.GetFacilityAppointmentsRequest{
		UserID:     userID,
		FacilityID: facilityID,
	}

	if appointmentTypeIDStr != "" {
		appointmentTypeID, err := strconv.ParseInt(appointmentTypeIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AppointmentTypeID = &appointmentTypeID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
