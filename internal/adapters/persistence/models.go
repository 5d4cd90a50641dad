package persistence

// ClientModel represents the clients table
type ClientModel struct {
	UserID      string `gorm:"column:user_id;primaryKey;not null"`
	ClientState string `gorm:"column:client_state;not null"`
}

func (ClientModel) TableName() string {
	return "clients"
}

// OrderModel represents the orders table
type OrderModel struct {
	OrderID  string `gorm:"column:order_id;primaryKey;not null"`
	UserID   string `gorm:"column:user_id;not null"`
	ReqState string `gorm:"column:req_state;not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderProductModel represents the order_products table. The composite key
// means a product name appears at most once per order; position records where
// the product sat in the submitted sequence, so an order reads back exactly
// as the client phrased it.
type OrderProductModel struct {
	OrderID   string `gorm:"column:order_id;primaryKey;not null"`
	Name      string `gorm:"column:name;primaryKey;not null"`
	Position  int    `gorm:"column:position;not null"`
	ProdState string `gorm:"column:prod_state;not null"`
}

func (OrderProductModel) TableName() string {
	return "order_products"
}
