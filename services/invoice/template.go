package invoice

import "html/template"

type lineView struct {
	Image    string
	Name     string
	Quantity int
	Price    string
}

type invoiceView struct {
	Store    string
	OrderID  string
	Customer string
	Email    string
	Lines    []lineView
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #ddd; width: 80%; margin: auto;">
  <h2 style="text-align: center; color: #4CAF50;">{{.Store}} Invoice</h2>
  <p><strong>Order ID:</strong> {{.OrderID}}</p>
  <p><strong>Customer Name:</strong> {{.Customer}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <h3 style="border-bottom: 2px solid #4CAF50; padding-bottom: 5px;">Order Details</h3>
  <table style="width: 100%; border-collapse: collapse; text-align: left;">
    <tr style="background: #4CAF50; color: white;">
      <th style="padding: 10px;">Image</th>
      <th style="padding: 10px;">Book</th>
      <th style="padding: 10px;">Quantity</th>
      <th style="padding: 10px;">Price</th>
    </tr>
    {{- range .Lines}}
    <tr style="border-bottom: 1px solid #ddd;">
      <td style="padding: 10px;"><img src="{{.Image}}" alt="{{.Name}}" style="width: 50px; height: 70px;"></td>
      <td style="padding: 10px;">{{.Name}}</td>
      <td style="padding: 10px;">{{.Quantity}}</td>
      <td style="padding: 10px;">&#8377;{{.Price}}</td>
    </tr>
    {{- end}}
  </table>
  <p style="text-align: center; color: #888;">Thank you for shopping with us!</p>
</div>
`))
