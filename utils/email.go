package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/velora-cart/velora/models"
)

// SendOrderConfirmation emails a plain order summary to the buyer. Failures
// are logged and returned; the caller decides whether the order flow should
// care (it should not — confirmation mail is best effort).
func SendOrderConfirmation(toEmail, name string, order *models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, skipping order confirmation for %s", order.OrderNumber)
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	body := fmt.Sprintf("Hi %s,\n\nThanks for shopping with Velora. Your order %s has been placed.\n\n", name, order.OrderNumber)
	for _, item := range order.Items {
		body += fmt.Sprintf("  %s x%d — %.2f\n", item.ProductTitle, item.Quantity, item.ProductPrice)
	}
	body += fmt.Sprintf("\nSubtotal: %.2f\nShipping: %.2f\nTotal: %.2f\n", order.Subtotal, order.ShippingPrice, order.TotalPrice)

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Velora order %s confirmed", order.OrderNumber))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		LogError("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
		return err
	}
	LogInfo("Order confirmation sent to %s for order %s", toEmail, order.OrderNumber)
	return nil
}
