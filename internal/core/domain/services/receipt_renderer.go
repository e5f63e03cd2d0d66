package services

import (
	"bytes"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/receipt"
)

// ReceiptRenderer renders the receipt document for an order.
//
// The output is deterministic and has no trailing newline:
//
//	Order: <id>
//	Customer: <customer>
//	Items: <item1>, <item2>, ...
//	Table: <table>
//
// Example usage:
//
//	renderer := services.NewReceiptRenderer()
//	r, err := renderer.Render(o)
//	if err != nil {
//	    // order was not constructed
//	}
//	store.Put(ctx, r)
type ReceiptRenderer struct{}

// NewReceiptRenderer creates a new ReceiptRenderer instance.
func NewReceiptRenderer() ReceiptRenderer {
	return ReceiptRenderer{}
}

// Render builds the receipt for o. It only fails when o is not a
// constructed order.
func (ReceiptRenderer) Render(o *order.Order) (receipt.Receipt, error) {
	if err := o.Validate(); err != nil {
		return receipt.Receipt{}, err
	}

	return receipt.NewReceipt(o.ID(), RenderContent(o))
}

// RenderContent returns the document bytes for o.
func RenderContent(o *order.Order) []byte {
	var buf bytes.Buffer
	buf.WriteString("Order: ")
	buf.WriteString(o.ID().String())
	buf.WriteString("\nCustomer: ")
	buf.WriteString(o.Customer())
	buf.WriteString("\nItems: ")
	buf.WriteString(strings.Join(o.Items(), ", "))
	buf.WriteString("\nTable: ")
	buf.WriteString(o.Table())
	return buf.Bytes()
}
