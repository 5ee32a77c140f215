package models

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Address  string `json:"address" binding:"required"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateAddressReq struct {
	Address string `json:"address" binding:"required"`
}

type BookReq struct {
	URL             string  `json:"url" binding:"required,url"`
	Name            string  `json:"name" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DiscountedPrice float64 `json:"discountedPrice" binding:"gte=0"`
	DiscountPercent float64 `json:"discountPercent" binding:"gte=0,lte=100"`
	Category        string  `json:"category" binding:"required"`
	Language        string  `json:"language" binding:"required"`
	Stock           *int    `json:"stock" binding:"omitempty,gte=0"`
	Quantity        *int    `json:"quantity" binding:"omitempty,gte=1"`
	ISBN            string  `json:"isbn"`
}

type CartReq struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type FavouriteReq struct {
	BookID string `json:"bookId" binding:"required"`
}

type PlaceOrderReq struct {
	SessionID string `json:"session_id" binding:"required"`
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type SendInvoiceReq struct {
	OrderID string `json:"order_id" binding:"required"`
}

type BookRequestReq struct {
	BookTitle string `json:"bookTitle" binding:"required"`
	Author    string `json:"author" binding:"required"`
	ISBN      string `json:"isbn" binding:"required,isbn13"`
	Message   string `json:"message"`
}

type RequestStatusReq struct {
	Status string `json:"status" binding:"required"`
}
