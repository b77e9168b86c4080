package variants

import "errors"

var (
	// ErrIncompleteSelection means a required, currently visible variant
	// group was left unfilled at build time. The caller surfaces it as a
	// "complete required fields" condition; the engine takes no corrective
	// action.
	ErrIncompleteSelection = errors.New("variants: required variant groups incomplete")

	// ErrZeroPriceItem means a variable-price line still has no resolved
	// price. The caller must collect a manual price before the line may be
	// sent to the kitchen or billed.
	ErrZeroPriceItem = errors.New("variants: variable-price item has no price set")

	// ErrUnknownCatalogReference means a name or id does not exist in the
	// current catalog. The voice path drops the single offending item and
	// continues the batch.
	ErrUnknownCatalogReference = errors.New("variants: no such item in catalog")
)
