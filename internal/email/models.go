package email

// OrderConfirmationRequest carries everything the confirmation template needs.
type OrderConfirmationRequest struct {
	ToAddress           string
	Name                string
	ProductName         string
	Quantity            int64
	Quote               Quote
	DiscountDescription string
	FirstBillingDate    string
}

// WelcomeRequest carries the onboarding email fields.
type WelcomeRequest struct {
	ToAddress string
	Name      string
}
