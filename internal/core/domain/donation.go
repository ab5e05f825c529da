package domain

// DonationInput is the payload sent when creating or updating a donation.
type DonationInput struct {
	DonorName      string  `json:"donorName" validate:"required,min=2,max=100"`
	DonorAddress   string  `json:"donorAddress" validate:"required,min=5,max=255"`
	DonorPhone     string  `json:"donorPhone" validate:"required,min=10,max=15"`
	DonationAmount float64 `json:"donationAmount" validate:"required,gt=0"`
	DonationType   string  `json:"donationType,omitempty" validate:"max=50"`
	Notes          string  `json:"notes,omitempty" validate:"max=500"`
}

// Donation is one donation record as returned by the backend.
type Donation struct {
	ID             int64   `json:"id"`
	DonorName      string  `json:"donorName"`
	DonorAddress   string  `json:"donorAddress,omitempty"`
	DonorPhone     string  `json:"donorPhone,omitempty"`
	DonationAmount float64 `json:"donationAmount"`
	DonationType   string  `json:"donationType,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	CreatedDate    string  `json:"createdDate,omitempty"`
	CreatedBy      string  `json:"createdBy,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
	UpdatedBy      string  `json:"updatedBy,omitempty"`
	CanEdit        bool    `json:"canEdit,omitempty"`
	CanDelete      bool    `json:"canDelete,omitempty"`
}

// DonationList is the backend envelope for donation listings.
type DonationList struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message,omitempty"`
	Donations  []Donation `json:"donations"`
	TotalCount int        `json:"totalCount"`
	Year       string     `json:"year,omitempty"`
}

// AvailableYears is the payload of the years listing.
type AvailableYears struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Years      []int  `json:"years"`
	TotalYears int    `json:"totalYears"`
}

// YearStats summarises one donation year.
type YearStats struct {
	Success           bool   `json:"success"`
	Year              int    `json:"year"`
	TotalRecords      int64  `json:"totalRecords"`
	FirstDonationDate string `json:"firstDonationDate,omitempty"`
	LastDonationDate  string `json:"lastDonationDate,omitempty"`
	Message           string `json:"message,omitempty"`
}

// AppInfo is the payload of the unauthenticated /info endpoint.
type AppInfo struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}
