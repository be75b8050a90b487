package product

import (
	"strings"

	"backoffice-console/internal/utils"
)

const (
	StockIn  = "In Stock"
	StockLow = "Low Stock"
	StockOut = "Out of Stock"
)

type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Image           string  `json:"image,omitempty"`
	ProductListID   string  `json:"product_idProductList,omitempty"`
	ProductListName string  `json:"productListName"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
	LowStockLvl     int     `json:"lowStockLvl"`
	StockStatus     string  `json:"stockStatus"`
	IsActive        bool    `json:"isActive"`
	VendorID        string  `json:"vendorId"`
}

type ProductList struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// Input is the body of a product create or edit.
type Input struct {
	Name          string  `json:"name"`
	ProductListID string  `json:"product_idProductList"`
	VendorID      string  `json:"product_idVendor,omitempty"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	LowStockLvl   int     `json:"lowStockLvl"`
	Image         string  `json:"image"`
}

// validateCreate applies the add-product form rules. Zero counts are
// treated as missing there.
func (in Input) validateCreate() error {
	v := utils.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "Product Name is required.")
	}
	if in.ProductListID == "" {
		v.Add("product_idProductList", "Product List is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "Description is required.")
	}
	if in.Price <= 0 {
		v.Add("price", "Price is required.")
	}
	if in.Stock <= 0 {
		v.Add("stock", "Stock is required.")
	}
	if in.LowStockLvl <= 0 {
		v.Add("lowStockLvl", "Low Stock Level is required.")
	}
	if strings.TrimSpace(in.Image) == "" {
		v.Add("image", "Image is required.")
	}
	return v.Err()
}

func (in Input) validateUpdate() error {
	v := utils.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "Product Name is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "Description is required.")
	}
	if in.Price <= 0 {
		v.Add("price", "Price must be greater than 0.")
	}
	if in.Stock < 0 {
		v.Add("stock", "Stock cannot be negative.")
	}
	if in.LowStockLvl < 0 {
		v.Add("lowStockLvl", "Low Stock Level cannot be negative.")
	}
	return v.Err()
}

// ListInput is the body of a product list create or edit.
type ListInput struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

func (in ListInput) validate() error {
	v := utils.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("Name", "Name is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("Description", "Description is required.")
	}
	return v.Err()
}

// StockDirection is the "type" field of a stock update.
type StockDirection int

const (
	StockReduce StockDirection = 0
	StockAdd    StockDirection = 1
)

func (d StockDirection) Valid() bool {
	return d == StockAdd || d == StockReduce
}

// StockChange is sent as-is to the API. A nil Type means the caller left it
// out, which is not the same as StockReduce.
type StockChange struct {
	Type        *StockDirection `json:"type"`
	StockChange int             `json:"stockChange"`
}

type Filter struct {
	Name        string
	Active      *bool
	StockStatus string
}

func (f Filter) match(p *Product) bool {
	if f.Active != nil && p.IsActive != *f.Active {
		return false
	}
	if f.StockStatus != "" && p.StockStatus != f.StockStatus {
		return false
	}
	return utils.ContainsFold(p.Name, f.Name)
}

// Counts is a total/active/inactive breakdown for the dashboard.
type Counts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func CountProducts(ps []Product) Counts {
	c := Counts{Total: len(ps)}
	for _, p := range ps {
		if p.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c
}

func CountProductLists(ls []ProductList) Counts {
	c := Counts{Total: len(ls)}
	for _, l := range ls {
		if l.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c
}
