package policy

import (
	"strconv"

	"github.com/muhammadheryan/marketplace/constant"
)

// Actor is the authenticated principal supplied by the session layer.
// The core trusts it and authorizes purely on role and ownership.
type Actor struct {
	UserID uint64
	Role   constant.Role
}

// String renders the actor for status history entries, e.g. "seller:12".
func (a Actor) String() string {
	return string(a.Role) + ":" + strconv.FormatUint(a.UserID, 10)
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

// OrderRef carries the ownership facts of an order that decisions need:
// who bought it and which shops its line items reference.
type OrderRef struct {
	CustomerID uint64
	ShopIDs    []uint64
}

func (r OrderRef) hasShop(shopIDs []uint64) bool {
	for _, owned := range shopIDs {
		for _, s := range r.ShopIDs {
			if s == owned {
				return true
			}
		}
	}
	return false
}

// CanViewOrder allows the buyer who placed the order, a seller owning any
// shop referenced by it, and admins.
func CanViewOrder(a Actor, ref OrderRef, actorShopIDs []uint64) bool {
	if a.IsAdmin() {
		return true
	}
	if a.Role == constant.RoleBuyer {
		return a.UserID == ref.CustomerID
	}
	return a.Role == constant.RoleSeller && ref.hasShop(actorShopIDs)
}

// CanDriveTransition encodes who may trigger each edge of the order status
// machine. Whether the edge itself exists is a separate check; this only
// answers the actor question.
func CanDriveTransition(a Actor, ref OrderRef, actorShopIDs []uint64, from, to constant.OrderStatus) bool {
	if a.IsAdmin() {
		return true
	}

	isSeller := a.Role == constant.RoleSeller && ref.hasShop(actorShopIDs)
	isCustomer := a.Role == constant.RoleBuyer && a.UserID == ref.CustomerID

	switch {
	case to == constant.OrderStatusCancelled && from == constant.OrderStatusPending:
		return isSeller || isCustomer
	case to == constant.OrderStatusCancelled:
		return isSeller
	case to == constant.OrderStatusDelivered:
		// delivery confirmation may come from the buyer side
		return isSeller || isCustomer
	default:
		return isSeller
	}
}

// CanManageProduct allows the owning seller and admins.
func CanManageProduct(a Actor, productSellerID uint64) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == constant.RoleSeller && a.UserID == productSellerID
}

// CanModerateProduct gates the approval lifecycle (active/rejected).
func CanModerateProduct(a Actor) bool {
	return a.IsAdmin()
}
