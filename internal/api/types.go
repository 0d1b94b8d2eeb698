package api

import (
	"time"

	"github.com/eugenenazirov/cloakroom/internal/attendant"
	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

type itemsRequest struct {
	Coats      int `json:"coats" validate:"min=0,max=255"`
	Backpacks  int `json:"backpacks" validate:"min=0,max=255"`
	Umbrellas  int `json:"umbrellas" validate:"min=0,max=255"`
	OtherItems int `json:"otherItems" validate:"min=0,max=255"`
}

func (r itemsRequest) items() cloakroom.Items {
	return cloakroom.Items{
		Coats:      uint8(r.Coats),
		Backpacks:  uint8(r.Backpacks),
		Umbrellas:  uint8(r.Umbrellas),
		OtherItems: uint8(r.OtherItems),
	}
}

type collectRequest struct {
	Key string `json:"key" validate:"required,token"`
}

type changeRequest struct {
	Key   string       `json:"key" validate:"required,token"`
	Items itemsRequest `json:"items"`
}

type receiptResponse struct {
	LockerNumber int             `json:"lockerNumber"`
	Key          string          `json:"key"`
	Items        cloakroom.Items `json:"items"`
	TotalItems   int             `json:"totalItems"`
	Description  string          `json:"description"`
}

func newReceiptResponse(r attendant.Receipt) receiptResponse {
	return receiptResponse{
		LockerNumber: r.LockerNumber,
		Key:          r.Token,
		Items:        r.Items,
		TotalItems:   r.Items.Total(),
		Description:  r.Items.String(),
	}
}

type contentsResponse struct {
	LockerNumber int             `json:"lockerNumber"`
	Items        cloakroom.Items `json:"items"`
	TotalItems   int             `json:"totalItems"`
	Description  string          `json:"description"`
}

type lockersResponse struct {
	Lockers []contentsResponse `json:"lockers"`
}

type stateResponse struct {
	LockerNumber int              `json:"lockerNumber"`
	State        cloakroom.Status `json:"state"`
	Items        *cloakroom.Items `json:"items,omitempty"`
	Description  string           `json:"description,omitempty"`
}

type layoutResponse struct {
	NumLockers        int                 `json:"numLockers"`
	MaxItemsPerLocker int                 `json:"maxItemsPerLocker"`
	Occupancy         cloakroom.Occupancy `json:"occupancy"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}
