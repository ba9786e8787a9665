package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrInvalidQuantity
	ErrProductNotFound
	ErrProductNotActive
	ErrInsufficientStock
	ErrInvalidStatusTransition
	ErrConcurrentModification
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                 "success",
	ErrInternal:                "error internal",
	ErrNotFound:                "data not found",
	ErrInvalidRequest:          "invalid request",
	ErrUnauthorize:             "unauthorize request",
	ErrForbidden:               "forbidden",
	ErrCredentialExists:        "email or phone already exists",
	ErrInvalidPassword:         "password invalid",
	ErrInvalidQuantity:         "quantity must be a positive integer",
	ErrProductNotFound:         "product not found",
	ErrProductNotActive:        "product is not purchasable",
	ErrInsufficientStock:       "insufficient stock",
	ErrInvalidStatusTransition: "invalid order status transition",
	ErrConcurrentModification:  "order was modified concurrently, please retry",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                 http.StatusOK,
	ErrInternal:                http.StatusInternalServerError,
	ErrNotFound:                http.StatusBadRequest,
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrUnauthorize:             http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
	ErrCredentialExists:        http.StatusBadRequest,
	ErrInvalidPassword:         http.StatusBadRequest,
	ErrInvalidQuantity:         http.StatusBadRequest,
	ErrProductNotFound:         http.StatusBadRequest,
	ErrProductNotActive:        http.StatusBadRequest,
	ErrInsufficientStock:       http.StatusConflict,
	ErrInvalidStatusTransition: http.StatusConflict,
	ErrConcurrentModification:  http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                 "0000",
	ErrInternal:                "0001",
	ErrNotFound:                "0002",
	ErrInvalidRequest:          "0003",
	ErrUnauthorize:             "0004",
	ErrForbidden:               "0005",
	ErrCredentialExists:        "0006",
	ErrInvalidPassword:         "0007",
	ErrInvalidQuantity:         "0008",
	ErrProductNotFound:         "0009",
	ErrProductNotActive:        "0010",
	ErrInsufficientStock:       "0011",
	ErrInvalidStatusTransition: "0012",
	ErrConcurrentModification:  "0013",
}
