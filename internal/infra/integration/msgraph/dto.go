package msgraph

// AppointmentInput is the flat booking request coming from the handler.
type AppointmentInput struct {
	ServiceID     string
	StartTime     string
	EndTime       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Appointment is the subset of the upstream response the API exposes.
type Appointment struct {
	ID string `json:"id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type dateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type availabilityRequest struct {
	StaffIDs   []string     `json:"staffIds"`
	ServiceIDs []string     `json:"serviceIds,omitempty"`
	StartTime  dateTimeZone `json:"startTime"`
	EndTime    dateTimeZone `json:"endTime"`
}

type appointmentCustomer struct {
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
}

type appointmentRequest struct {
	ServiceID string                `json:"serviceId"`
	StartTime dateTimeZone          `json:"startTime"`
	EndTime   dateTimeZone          `json:"endTime"`
	Customers []appointmentCustomer `json:"customers"`
}
