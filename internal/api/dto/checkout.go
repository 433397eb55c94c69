package dto

// ProductTypeResponse reports the tier a price id grants
type ProductTypeResponse struct {
	PriceID     string `json:"priceId"`
	ProductType string `json:"productType"`
}
