package domain

// Customer 帳戶持有人，值類型，可自由複製
// CustomerID 不保證唯一
type Customer struct {
	Name         string `json:"name" yaml:"name"`
	CustomerID   string `json:"customer_id" yaml:"customer_id"`
	CustomerInfo string `json:"customer_info" yaml:"customer_info"`
}

func NewCustomer(name, customerID, customerInfo string) Customer {
	return Customer{
		Name:         name,
		CustomerID:   customerID,
		CustomerInfo: customerInfo,
	}
}
