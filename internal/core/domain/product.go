package domain

import "github.com/govalues/decimal"

type Product struct {
	ID            uint64
	Name          string
	Price         decimal.Decimal
	StockQuantity int32
}

type ProductVariant struct {
	ID        uint64
	ProductID uint64
	Label     string
	Quantity  int32
}

type Shipping struct {
	ID       uint64
	UserID   uint64
	FullName string
	Phone    string
	Address  string
}
