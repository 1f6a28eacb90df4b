package models

type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

const (
	UnknownCompanyName  = "Unknown Company"
	StandardCarTypeName = "Standard"
)

// Trip is the flat shape of an assignment as the driver portal sees it.
// Date is YYYY-MM-DD and Time is HH:MM:SS.
type Trip struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	CompanyName     string     `json:"company_name"`
	ClientName      string     `json:"client_name"`
	ClientPhone     *string    `json:"client_phone"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Passengers      int        `json:"passengers"`
	Price           float64    `json:"price"`
	DriverFee       *float64   `json:"driver_fee"`
	Status          TripStatus `json:"status"`
	Description     string     `json:"description"`
	BookingID       string     `json:"booking_id"`
	CarTypeName     string     `json:"car_type_name"`
}

// DisplayPrice is what the driver earns for the trip: the driver fee when
// one is set, the base price otherwise.
func (t *Trip) DisplayPrice() float64 {
	if t.DriverFee != nil {
		return *t.DriverFee
	}
	return t.Price
}
