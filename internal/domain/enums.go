package domain

// OrderStatus is the numeric status enum used on the wire by the backend.
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusConfirmed OrderStatus = 1
	OrderStatusCompleted OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
)

// IsValid checks if the order status is one the client recognizes.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// StatusBucket is the display classification of an order status.
type StatusBucket string

const (
	BucketPending   StatusBucket = "Pending"
	BucketConfirmed StatusBucket = "Confirmed"
	BucketCompleted StatusBucket = "Completed"
	BucketCancelled StatusBucket = "Cancelled"

	// BucketUnknown holds any status value the client does not recognize.
	// Unknown orders are never offered for cancellation.
	BucketUnknown StatusBucket = "Unknown"
)

// Classify maps the numeric status to its display bucket.
func (s OrderStatus) Classify() StatusBucket {
	switch s {
	case OrderStatusPending:
		return BucketPending
	case OrderStatusConfirmed:
		return BucketConfirmed
	case OrderStatusCompleted:
		return BucketCompleted
	case OrderStatusCancelled:
		return BucketCancelled
	default:
		return BucketUnknown
	}
}

// CanCancel reports whether an order in this status may still be cancelled.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}
