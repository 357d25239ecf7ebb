package domain

import "gopkg.in/guregu/null.v4"

type CreditCard struct {
	ID        int         `json:"card_id"`
	DriverID  int         `json:"driver_id,omitempty"`
	Nickname  null.String `json:"card_nickname"`
	Number    string      `json:"card_number"`
	Expiry    string      `json:"card_expiry"`
	CVV       string      `json:"card_cvv"`
	CardType  string      `json:"card_type"`
	IsDefault bool        `json:"is_default"`
}

type AddCardDTO struct {
	DriverID  int    `json:"driver_id" binding:"required"`
	Nickname  string `json:"card_nickname"`
	Number    string `json:"card_number" binding:"required"`
	Expiry    string `json:"card_expiry" binding:"required"`
	CVV       string `json:"card_cvv" binding:"required"`
	CardType  string `json:"card_type"`
	IsDefault bool   `json:"is_default"`
}

type SetDefaultCardDTO struct {
	DriverID int `json:"driver_id" binding:"required"`
	CardID   int `json:"card_id" binding:"required"`
}
