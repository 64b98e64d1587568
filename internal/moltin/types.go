package moltin

// Product is one sellable position from the catalog.
type Product struct {
	ID          string
	Name        string
	Description string
	// Price is the unit price in minor currency units.
	Price       int
	MainImageID string
}

// CartItem is one line of a cart.
type CartItem struct {
	ID       string
	Name     string
	Quantity int
	// Subtotal is the line total in minor currency units.
	Subtotal        int
	SubtotalDisplay string
}

// Cart is the full cart contents with the order total.
type Cart struct {
	Items        []CartItem
	Total        int
	TotalDisplay string
}

// wire shapes below mirror the backend JSON and never leave this package.

type productData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       []struct {
		Amount int `json:"amount"`
	} `json:"price"`
	Relationships struct {
		MainImage struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"main_image"`
	} `json:"relationships"`
}

func (p productData) toProduct() Product {
	product := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		MainImageID: p.Relationships.MainImage.Data.ID,
	}
	if len(p.Price) > 0 {
		product.Price = p.Price[0].Amount
	}

	return product
}

type cartItemData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Meta     struct {
		DisplayPrice struct {
			WithTax struct {
				Value struct {
					Amount    int    `json:"amount"`
					Formatted string `json:"formatted"`
				} `json:"value"`
			} `json:"with_tax"`
		} `json:"display_price"`
	} `json:"meta"`
}

type cartItemsResponse struct {
	Data []cartItemData `json:"data"`
	Meta struct {
		DisplayPrice struct {
			WithTax struct {
				Amount    int    `json:"amount"`
				Formatted string `json:"formatted"`
			} `json:"with_tax"`
		} `json:"display_price"`
	} `json:"meta"`
}

type flowEntryData struct {
	ID            string  `json:"id"`
	Address       string  `json:"address"`
	Alias         string  `json:"alias"`
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	DeliveryManID int64   `json:"delivery_man_id"`
}
