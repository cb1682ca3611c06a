// models.go
package model

// User is the profile returned by the marketplace API. Only the fields the
// console displays or decides on are decoded.
type User struct {
	ID       string `json:"_id,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

type Order struct {
	OrderID   string  `json:"orderId"`
	WasteType string  `json:"wasteType"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Status    string  `json:"status"`
	Owner     *Owner  `json:"owner,omitempty"`
	OwnerID   string  `json:"ownerId,omitempty"`
}

// Owner is the populated owner of an order; the API sends either this or a
// bare ownerId.
type Owner struct {
	Email string `json:"email"`
}

// Order statuses known to the console. The console only ever requests a
// transition to StatusCompleted.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// OwnerLabel is the best available description of who placed the order.
func (o Order) OwnerLabel() string {
	if o.Owner != nil && o.Owner.Email != "" {
		return o.Owner.Email
	}
	if o.OwnerID != "" {
		return o.OwnerID
	}
	return "—"
}
