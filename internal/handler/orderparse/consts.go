package orderparse

const (
	ORDER_EXTRACTION_INSTRUCTION string = `You take orders for a supplier to the wine industry.
	A customer sent the message enclosed within <msg> </msg> tags. The supplier's catalogue is enclosed within <catalog> </catalog> tags,
	one product per line in the form 'name | unit'.
	List every product the customer asks for with the quantity they want. Use the catalogue name when the customer clearly means
	a catalogue product, otherwise repeat the customer's own wording. Quantities are whole numbers.
	Generate a JSON formated response, containing a list of items under the 'lines' key, and each item should have 'product', 'quantity' and 'note' keys.
	Do not include any other text in your response.
	Example:
	{
		"lines": [
			{
				"product": product,
				"quantity": quantity,
				"note": note
			}
		]
	}

	<catalog>%s</catalog>

	<msg>%s</msg>`
)
