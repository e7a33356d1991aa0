package domain

// Order statuses as reported by the backend.
const (
	OrderPendingPayment = "pending_payment"
	OrderPaid           = "paid"
	OrderPendingSample  = "pending_sample"
	OrderTesting        = "testing"
	OrderCompleted      = "completed"
	OrderCancelled      = "cancelled"
	OrderRefunded       = "refunded"
)

// Payment methods.
const (
	PayBalance = "balance"
	PayAlipay  = "alipay"
	PayWechat  = "wechat"
)

// ValidPayMethod reports whether m is a payment method the client can submit.
func ValidPayMethod(m string) bool {
	switch m {
	case PayBalance, PayAlipay, PayWechat:
		return true
	}
	return false
}

// Shipping methods for orders.
const (
	ShipSelf     = "self"
	ShipExpress  = "express"
	ShipPlatform = "platform"
)

// SMS scenes.
const (
	SceneLogin         = "login"
	SceneRegister      = "register"
	SceneResetPassword = "reset_password"
)

// Invoice types.
const (
	InvoicePersonal = "personal"
	InvoiceCompany  = "company"
)
