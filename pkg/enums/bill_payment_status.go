package enums

// BillPaymentStatus is the server-reported settlement state of a bill.
type BillPaymentStatus string

const (
	BillPaymentStatusPending       BillPaymentStatus = "PENDING"
	BillPaymentStatusPaid          BillPaymentStatus = "PAID"
	BillPaymentStatusPartiallyPaid BillPaymentStatus = "PARTIALLY_PAID"
	BillPaymentStatusRefunded      BillPaymentStatus = "REFUNDED"
)

func (b BillPaymentStatus) String() string {
	return string(b)
}
