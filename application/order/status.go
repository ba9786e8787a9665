package order

import "github.com/muhammadheryan/marketplace/constant"

// validNext is the order status transition table. Cancellation is only
// reachable before shipping; delivered and cancelled are terminal.
var validNext = map[constant.OrderStatus]map[constant.OrderStatus]bool{
	constant.OrderStatusPending: {
		constant.OrderStatusProcessing: true,
		constant.OrderStatusCancelled:  true,
	},
	constant.OrderStatusProcessing: {
		constant.OrderStatusShipped:   true,
		constant.OrderStatusCancelled: true,
	},
	constant.OrderStatusShipped: {
		constant.OrderStatusDelivered: true,
	},
	constant.OrderStatusDelivered: {},
	constant.OrderStatusCancelled: {},
}

func CanTransition(from, to constant.OrderStatus) bool {
	return validNext[from][to]
}

// KnownStatus reports whether s is a status the machine recognizes at all.
func KnownStatus(s constant.OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}
