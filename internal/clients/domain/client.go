package domain

import "time"

// Client is a registered client record. ID and CreatedAt are assigned by the
// storage backend and never change afterwards.
type Client struct {
	ID        int64
	Name      string
	Address   *string // nil when absent
	Phone     *string // nil when absent
	CreatedAt time.Time
}

// NewClient is the input for inserting a client. Name is already trimmed and
// non-empty by the time it reaches a store.
type NewClient struct {
	Name    string
	Address *string
	Phone   *string
}

// Inserted holds the backend-assigned fields of a freshly inserted client.
type Inserted struct {
	ID        int64
	CreatedAt time.Time
}

// WithInserted combines the insert input with the assigned fields.
func (n NewClient) WithInserted(ins Inserted) Client {
	return Client{
		ID:        ins.ID,
		Name:      n.Name,
		Address:   n.Address,
		Phone:     n.Phone,
		CreatedAt: ins.CreatedAt,
	}
}
