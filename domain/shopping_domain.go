package domain

var (
	MessageSuccessSendShoppingList = "shopping list sent"

	MessageFailedDownloadShoppingList = "failed to build shopping list"
	MessageFailedSendShoppingList     = "failed to send shopping list"
)

const ShoppingListFileName = "shopping_list.txt"

type (
	// ShoppingListItem is one aggregated line: the total amount of an
	// ingredient across every recipe in the cart.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Total           int    `json:"total"`
	}
)
