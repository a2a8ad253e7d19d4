package catalogimport

const (
	CATALOG_EXTRACTION_INSTRUCTION string = `You are a procurement assistant for the South African wine industry.
	Read the text of a supplier's catalogue page enclosed within <page> </page> tags and extract every product offered for sale.
	Suppliers sell dry goods such as bottles, corks, capsules, labels, cartons and cellar chemicals.
	For each product give its name, a short description, a category, the selling unit (for example 'each', 'box of 100', 'pallet'),
	the price in South African Rand as a plain number without currency symbols, the minimum order quantity if stated (otherwise 0)
	and the image url if one is present in the text.
	Ignore navigation, footers, and anything that is not a product.
	Generate a JSON formated response, containing a list of items under the 'products' key. Do not include any other text in your response.
	Example:
	{
		"products": [
			{
				"name": name,
				"description": description,
				"category": category,
				"unit": unit,
				"price": price,
				"minOrderQty": minOrderQty,
				"imageUrl": imageUrl
			}
		]
	}

	<page>%s</page>`
)
