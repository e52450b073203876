package backend

import "github.com/arjunkrish/pharmapos-terminal/pkg/enums"

// LoginRequest carries the credentials posted to /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse mirrors the backend login payload.
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Medicine is the pharmacist-facing product record. The barcode is a GTIN/EAN
// identifying the product, not unique per unit.
type Medicine struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Manufacturer         string               `json:"manufacturer"`
	Category             string               `json:"category,omitempty"`
	Barcode              string               `json:"barcode,omitempty"`
	HSNCode              string               `json:"hsnCode"`
	GSTPercentage        float64              `json:"gstPercentage"`
	PrescriptionRequired bool                 `json:"prescriptionRequired"`
	Status               enums.MedicineStatus `json:"status"`
	TotalStock           *int                 `json:"totalStock,omitempty"`
	AvailableStock       *int                 `json:"availableStock,omitempty"`
	LowStock             *bool                `json:"lowStock,omitempty"`
	OutOfStock           *bool                `json:"outOfStock,omitempty"`
	LowStockThreshold    *int                 `json:"lowStockThreshold,omitempty"`
	CreatedAt            string               `json:"createdAt,omitempty"`
	UpdatedAt            string               `json:"updatedAt,omitempty"`
}

// Batch is a priced, dated stock lot of a medicine.
type Batch struct {
	ID                int64   `json:"id"`
	MedicineID        int64   `json:"medicineId"`
	MedicineName      string  `json:"medicineName"`
	BatchNumber       string  `json:"batchNumber"`
	ExpiryDate        string  `json:"expiryDate"`
	PurchasePrice     float64 `json:"purchasePrice"`
	SellingPrice      float64 `json:"sellingPrice"`
	QuantityAvailable int     `json:"quantityAvailable"`
	Expired           bool    `json:"expired"`
	CreatedAt         string  `json:"createdAt,omitempty"`
	UpdatedAt         string  `json:"updatedAt,omitempty"`
}

// CreateMedicineRequest creates a medicine, optionally seeding an initial batch.
type CreateMedicineRequest struct {
	Name                 string   `json:"name"`
	Manufacturer         string   `json:"manufacturer"`
	Category             string   `json:"category,omitempty"`
	Barcode              string   `json:"barcode,omitempty"`
	HSNCode              string   `json:"hsnCode"`
	GSTPercentage        float64  `json:"gstPercentage"`
	PrescriptionRequired bool     `json:"prescriptionRequired"`
	InitialStock         *int     `json:"initialStock,omitempty"`
	PurchasePrice        *float64 `json:"purchasePrice,omitempty"`
	SellingPrice         *float64 `json:"sellingPrice,omitempty"`
	BatchNumber          string   `json:"batchNumber,omitempty"`
	ExpiryDate           string   `json:"expiryDate,omitempty"`
}

// UpdateMedicineRequest replaces the mutable medicine fields.
type UpdateMedicineRequest struct {
	Name                 string  `json:"name"`
	Manufacturer         string  `json:"manufacturer"`
	Category             string  `json:"category,omitempty"`
	Barcode              string  `json:"barcode,omitempty"`
	HSNCode              string  `json:"hsnCode"`
	GSTPercentage        float64 `json:"gstPercentage"`
	PrescriptionRequired bool    `json:"prescriptionRequired"`
}

// CreateBatchRequest registers a new stock lot.
type CreateBatchRequest struct {
	MedicineID        int64   `json:"medicineId"`
	BatchNumber       string  `json:"batchNumber"`
	ExpiryDate        string  `json:"expiryDate"`
	PurchasePrice     float64 `json:"purchasePrice"`
	SellingPrice      float64 `json:"sellingPrice"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

// UpdateBatchRequest replaces the mutable batch fields.
type UpdateBatchRequest struct {
	BatchNumber       string  `json:"batchNumber"`
	ExpiryDate        string  `json:"expiryDate"`
	PurchasePrice     float64 `json:"purchasePrice"`
	SellingPrice      float64 `json:"sellingPrice"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

// UpdateStockRequest adjusts the available quantity of a batch.
type UpdateStockRequest struct {
	QuantityAvailable int `json:"quantityAvailable"`
}

// BillItemRequest identifies one line of a bill by medicine id or scanned code.
type BillItemRequest struct {
	MedicineID *int64 `json:"medicineId,omitempty"`
	Barcode    string `json:"barcode,omitempty"`
	Quantity   int    `json:"quantity"`
}

// PaymentRequest is one payment entry as transmitted. Cash tendered is a
// display-only convenience and never part of this payload.
type PaymentRequest struct {
	Mode             enums.PaymentMode `json:"mode"`
	Amount           float64           `json:"amount"`
	PaymentReference string            `json:"paymentReference,omitempty"`
}

// CreateBillRequest is the submission payload for a new bill.
type CreateBillRequest struct {
	Items         []BillItemRequest `json:"items"`
	CustomerName  string            `json:"customerName,omitempty"`
	CustomerPhone string            `json:"customerPhone,omitempty"`
	Payments      []PaymentRequest  `json:"payments"`
}

// BillItemResponse is one authoritative bill line.
type BillItemResponse struct {
	ID            int64   `json:"id"`
	MedicineID    int64   `json:"medicineId"`
	MedicineName  string  `json:"medicineName"`
	BatchNumber   string  `json:"batchNumber"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	GSTPercentage float64 `json:"gstPercentage"`
	GSTAmount     float64 `json:"gstAmount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// PaymentResponse is one settled payment entry.
type PaymentResponse struct {
	ID               int64               `json:"id"`
	PaymentReference string              `json:"paymentReference"`
	Mode             enums.PaymentMode   `json:"mode"`
	Amount           float64             `json:"amount"`
	Status           enums.PaymentStatus `json:"status"`
	PaymentDate      string              `json:"paymentDate"`
}

// Bill is the authoritative bill record; its totals are server-computed and
// override any client-side estimate.
type Bill struct {
	ID                 int64                   `json:"id"`
	BillNumber         string                  `json:"billNumber"`
	BillDate           string                  `json:"billDate"`
	CashierID          int64                   `json:"cashierId"`
	CashierName        string                  `json:"cashierName"`
	CustomerName       string                  `json:"customerName,omitempty"`
	CustomerPhone      string                  `json:"customerPhone,omitempty"`
	Subtotal           float64                 `json:"subtotal"`
	TotalGST           float64                 `json:"totalGst"`
	TotalAmount        float64                 `json:"totalAmount"`
	PaymentStatus      enums.BillPaymentStatus `json:"paymentStatus"`
	Cancelled          bool                    `json:"cancelled"`
	CancellationReason string                  `json:"cancellationReason,omitempty"`
	Items              []BillItemResponse      `json:"items"`
	Payments           []PaymentResponse       `json:"payments"`
	CreatedAt          string                  `json:"createdAt"`
}

// ReturnItemRequest reverses part of one bill line.
type ReturnItemRequest struct {
	BillItemID int64 `json:"billItemId"`
	Quantity   int   `json:"quantity"`
}

// ReturnRequest reverses items of a paid bill.
type ReturnRequest struct {
	BillID int64               `json:"billId"`
	Reason string              `json:"reason"`
	Items  []ReturnItemRequest `json:"items"`
}

// SalesReport aggregates billing over a date range.
type SalesReport struct {
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	TotalBills int          `json:"totalBills"`
	TotalSales float64      `json:"totalSales"`
	TotalGST   float64      `json:"totalGst"`
	TotalCash  float64      `json:"totalCash"`
	TotalUPI   float64      `json:"totalUpi"`
	TotalCard  float64      `json:"totalCard"`
	DailySales []DailySales `json:"dailySales"`
}

// DailySales is one day of the sales report.
type DailySales struct {
	Date        string  `json:"date"`
	BillCount   int     `json:"billCount"`
	TotalAmount float64 `json:"totalAmount"`
}

// GSTReport breaks tax down by HSN code.
type GSTReport struct {
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	TotalCGST float64      `json:"totalCgst"`
	TotalSGST float64      `json:"totalSgst"`
	TotalGST  float64      `json:"totalGst"`
	GSTBreaks []GSTBreakup `json:"gstBreakup"`
}

// GSTBreakup is one HSN line of the GST report.
type GSTBreakup struct {
	HSNCode       string  `json:"hsnCode"`
	MedicineName  string  `json:"medicineName"`
	GSTPercentage float64 `json:"gstPercentage"`
	TaxableAmount float64 `json:"taxableAmount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	TotalGST      float64 `json:"totalGst"`
}

// StockReport is the point-in-time stock snapshot.
type StockReport struct {
	ReportDate             string  `json:"reportDate"`
	TotalMedicines         int     `json:"totalMedicines"`
	TotalBatches           int     `json:"totalBatches"`
	TotalStockQuantity     int     `json:"totalStockQuantity"`
	AvailableStockQuantity int     `json:"availableStockQuantity"`
	ExpiredStockQuantity   int     `json:"expiredStockQuantity"`
	LowStockMedicines      int     `json:"lowStockMedicines"`
	OutOfStockMedicines    int     `json:"outOfStockMedicines"`
	TotalStockValue        float64 `json:"totalStockValue"`
}

// User is the admin-facing account record.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ChangePasswordRequest sets a new password for a user.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// AuditLog is one audit trail entry.
type AuditLog struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Username    string  `json:"username"`
	FullName    string  `json:"fullName"`
	Role        string  `json:"role"`
	Action      string  `json:"action"`
	EntityType  string  `json:"entityType"`
	EntityID    string  `json:"entityId"`
	Description string  `json:"description"`
	OldValue    *string `json:"oldValue"`
	NewValue    *string `json:"newValue"`
	Timestamp   string  `json:"timestamp"`
	IPAddress   *string `json:"ipAddress"`
}
