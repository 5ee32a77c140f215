package models

type SalesBucket struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type TopSeller struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

type BookTally struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type SalesReport struct {
	TotalOrders          int64                `json:"totalOrders"`
	TotalDeliveredOrders int64                `json:"totalDeliveredOrders"`
	TotalBooksSold       int                  `json:"totalBooksSold"`
	TotalRevenue         float64              `json:"totalRevenue"`
	SalesByBook          map[string]BookTally `json:"salesByBook"`
	MonthlySales         []SalesBucket        `json:"monthlySales"`
	TopSellingBooks      []TopSeller          `json:"topSellingBooks"`
	AllOrders            []OrderDetail        `json:"allOrders"`
}
