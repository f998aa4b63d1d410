package domain

// ContactForm is the contact page submission.
type ContactForm struct {
	Name     string `json:"name" form:"name" validate:"min=2,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Business string `json:"business" form:"business" validate:"omitempty,max=100"`
	Subject  string `json:"subject" form:"subject" validate:"required"`
	Message  string `json:"message" form:"message" validate:"min=10,max=1000"`
}

type NewsletterForm struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// QuickscanForm is the lead-gen form of the campaign pages.
type QuickscanForm struct {
	Company string `json:"company" form:"company" validate:"min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=20"`
}

// SubmissionResult is returned to the visitor after a successful form action.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
