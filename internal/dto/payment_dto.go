package dto

// GatewayStatusResponse tells clients whether online payment is available.
type GatewayStatusResponse struct {
	Enabled  bool    `json:"enabled"`
	Provider string  `json:"provider"`
	Message  string  `json:"message"`
	KeyID    *string `json:"key_id"`
}

// CreateOrderRequest asks for a gateway order. StudentID defaults to the caller.
type CreateOrderRequest struct {
	StudentID string  `json:"student_id" validate:"omitempty,max=32"`
	AmountINR float64 `json:"amount_inr" validate:"gte=0"`
}

// CreateOrderResponse hands the gateway order to the checkout widget.
type CreateOrderResponse struct {
	KeyID       string                 `json:"key_id"`
	Order       map[string]interface{} `json:"order"`
	StudentID   string                 `json:"student_id"`
	AmountINR   float64                `json:"amount_inr"`
	DueINR      float64                `json:"due_inr"`
	StudentName string                 `json:"student_name"`
}

// VerifyPaymentRequest carries the checkout callback fields.
type VerifyPaymentRequest struct {
	StudentID         string  `json:"student_id" validate:"required,max=32"`
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	AmountPaidINR     float64 `json:"amount_paid_inr"`
}

// Invoice is issued for every verified online payment.
type Invoice struct {
	InvoiceNo   string  `json:"invoice_no"`
	Date        string  `json:"date"`
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Course      string  `json:"course"`
	PaymentID   string  `json:"payment_id"`
	OrderID     string  `json:"order_id"`
	AmountPaid  float64 `json:"amount_paid"`
	AmountTotal float64 `json:"amount_total"`
	BalanceDue  float64 `json:"balance_due"`
}

// VerifyPaymentResponse confirms a recorded payment.
type VerifyPaymentResponse struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	AmountPaidINR float64 `json:"amount_paid_inr"`
	Invoice       Invoice `json:"invoice"`
}
