// Package receipt provides the Receipt value object: the document derived
// from an order during processing and kept in the artifact store.
package receipt

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	// ContentType labels the stored payload. The body is plain text until a
	// real document renderer replaces the placeholder format; the label and
	// the key suffix move together when that happens.
	ContentType = "application/pdf"

	keySuffix = ".pdf"
)

var ErrReceiptIsNotConstructed = errors.New("Receipt must be created via NewReceipt constructor")

// Receipt is the rendered document for one order. At most one exists per
// order and it is never rewritten once stored.
type Receipt struct {
	orderID     kernel.UUID
	contentType string
	content     []byte

	guard guard.ConstructorGuard
}

// NewReceipt wraps rendered content for orderID using the default content type.
func NewReceipt(orderID kernel.UUID, content []byte) (Receipt, error) {
	return RestoreReceipt(orderID, ContentType, content)
}

// RestoreReceipt rebuilds a receipt read back from an artifact store.
func RestoreReceipt(orderID kernel.UUID, contentType string, content []byte) (Receipt, error) {
	if err := orderID.Validate(); err != nil {
		return Receipt{}, err
	}
	if len(content) == 0 {
		return Receipt{}, errs.NewValueIsRequiredError("receipt content")
	}
	if contentType == "" {
		contentType = ContentType
	}

	return Receipt{
		orderID:     orderID,
		contentType: contentType,
		content:     append([]byte(nil), content...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// KeyFor returns the artifact key for an order's receipt: "<id>.pdf".
func KeyFor(orderID kernel.UUID) string {
	return orderID.String() + keySuffix
}

func (r Receipt) Validate() error {
	return r.guard.Validate(ErrReceiptIsNotConstructed)
}

func (r Receipt) OrderID() kernel.UUID {
	return r.orderID
}

func (r Receipt) Key() string {
	return KeyFor(r.orderID)
}

func (r Receipt) ContentType() string {
	return r.contentType
}

// Content returns a copy of the document bytes.
func (r Receipt) Content() []byte {
	return append([]byte(nil), r.content...)
}
