package user

type (
	InfoRequest struct {
		FirstName       string   `json:"first_name"`
		LastName        string   `json:"last_name"`
		DateOfBirth     string   `json:"date_of_birth"`
		PhysicalAddress *Address `json:"physical_address"`
	}

	CheckEmailRequest struct {
		Email string `json:"email"`
	}
)
