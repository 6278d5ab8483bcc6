package contact

// Submission is the contact form payload. It is never stored.
type Submission struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" binding:"required"`
}

// Validate reports the required fields that are empty.
func (s Submission) Validate() error {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// SampleSubmission is the fixed payload rendered by the test endpoint.
func SampleSubmission() Submission {
	return Submission{
		Name:    "John Doe",
		Email:   "john.doe@example.com",
		Company: "Test Company Pvt Ltd",
		Phone:   "+91 98765 43210",
		Message: "This is a test message to verify the email template design and functionality.",
	}
}

type TestEmailResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	TestData Submission `json:"testData"`
}
