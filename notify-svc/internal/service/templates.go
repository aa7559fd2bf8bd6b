package service

import (
	"fmt"

	"delish/notify-svc/internal/domain"
)

// statusLines carries the message body line per order status. Statuses
// without an entry do not trigger an email.
var statusLines = map[string]string{
	"confirmed":        "Your order has been confirmed and is being processed.",
	"preparing":        "Your food is being prepared.",
	"out_for_delivery": "Your order is out for delivery and will reach you soon.",
	"delivered":        "Your order has been delivered. Enjoy your meal!",
	"cancelled":        "Your order has been cancelled.",
	"refunded":         "Your order has been refunded. The amount will reflect in your account shortly.",
}

func orderCreatedEmail(evt domain.OrderEvent) (subject, body string) {
	subject = fmt.Sprintf("Order Placed - %s", evt.OrderNumber)
	body = fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"Thank you for your order!\r\n\r\n"+
			"Order Number: %s\r\n"+
			"Total Amount: ₹%s\r\n\r\n"+
			"You can track your order in the app.\r\n\r\n"+
			"Thank you for choosing Delish!\r\n"+
			"The Delish Team\r\n",
		evt.OrderNumber, evt.Total.StringFixed(2))
	return subject, body
}

func statusChangedEmail(evt domain.OrderEvent) (subject, body string, ok bool) {
	line, ok := statusLines[evt.Status]
	if !ok {
		return "", "", false
	}
	subject = fmt.Sprintf("Order Update - %s", evt.OrderNumber)
	body = fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"%s\r\n\r\n"+
			"Order Number: %s\r\n"+
			"Status: %s\r\n\r\n"+
			"Thank you for choosing Delish!\r\n"+
			"The Delish Team\r\n",
		line, evt.OrderNumber, evt.Status)
	return subject, body, true
}
