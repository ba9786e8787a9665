package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	cartapp "github.com/muhammadheryan/marketplace/application/cart"
	catalogapp "github.com/muhammadheryan/marketplace/application/catalog"
	checkoutapp "github.com/muhammadheryan/marketplace/application/checkout"
	orderapp "github.com/muhammadheryan/marketplace/application/order"
	shopapp "github.com/muhammadheryan/marketplace/application/shop"
	userapp "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	utilsContext "github.com/muhammadheryan/marketplace/utils/context"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/policy"
	validatorx "github.com/muhammadheryan/marketplace/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	CatalogApp  catalogapp.CatalogApp
	CartApp     cartapp.CartApp
	CheckoutApp checkoutapp.CheckoutApp
	OrderApp    orderapp.OrderApp
	ShopApp     shopapp.ShopApp
}

func NewTransport(rh *RestHandler, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)

	// Catalog (seller / admin)
	mux.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id}/submit", rh.SubmitProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id}/approve", rh.ApproveProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id}/reject", rh.RejectProduct).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id}/archive", rh.ArchiveProduct).Methods(http.MethodPost)

	// Shop
	mux.HandleFunc("/shops/{id}/products", rh.ListShopProducts).Methods(http.MethodGet)
	mux.HandleFunc("/shops/{id}/orders", rh.ListShopOrders).Methods(http.MethodGet)
	mux.HandleFunc("/shops/{id}/stats", rh.GetShopStats).Methods(http.MethodGet)

	// Cart
	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart", rh.ClearCart).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/items", rh.AddCartItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{productID}", rh.RemoveCartItem).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/checkout", rh.CheckoutCart).Methods(http.MethodPost)

	// Checkout and orders
	mux.HandleFunc("/checkout", rh.Checkout).Methods(http.MethodPost)
	mux.HandleFunc("/orders", rh.ListMyOrders).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/status", rh.UpdateOrderStatus).Methods(http.MethodPut)
	mux.HandleFunc("/orders/{id}/cancel", rh.CancelOrder).Methods(http.MethodPost)

	// Internal routes for service-to-service calls, guarded by a static key
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/orders/{id}/cancel", rh.InternalCancelOrder).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

// actorFromContext builds the policy actor from the authenticated session.
func actorFromContext(r *http.Request) (policy.Actor, bool) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		return policy.Actor{}, false
	}
	role, ok := utilsContext.GetUserRole(r.Context())
	if !ok {
		return policy.Actor{}, false
	}
	return policy.Actor{UserID: userID, Role: role}, true
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}

// Register handler
// @Summary Register user
// @Description Register a new buyer or seller account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListProducts handler
// @Summary List products
// @Description List active products, paginated
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.CatalogApp.ListProducts(r.Context(), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Description Product detail with varieties
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductEntity
// @Failure 404 {object} errors.CustomError
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Description Create a draft product in the seller's shop
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body model.CreateProductRequest true "Product"
// @Success 200 {object} map[string]uint64
// @Failure 403 {object} errors.CustomError
// @Router /products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	id, err := s.CatalogApp.CreateProduct(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]uint64{"id": id})
}

func (s *RestHandler) SubmitProduct(w http.ResponseWriter, r *http.Request) {
	s.productStatusChange(w, r, s.CatalogApp.SubmitForReview)
}

func (s *RestHandler) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	s.productStatusChange(w, r, s.CatalogApp.ApproveProduct)
}

func (s *RestHandler) RejectProduct(w http.ResponseWriter, r *http.Request) {
	s.productStatusChange(w, r, s.CatalogApp.RejectProduct)
}

func (s *RestHandler) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	s.productStatusChange(w, r, s.CatalogApp.ArchiveProduct)
}

func (s *RestHandler) productStatusChange(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor policy.Actor, productID uint64) error) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := op(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ListShopProducts handler
// @Summary List shop products
// @Description All products of one shop, any status, for the shop owner
// @Tags Shop
// @Produce json
// @Param id path int true "Shop ID"
// @Success 200 {array} model.ProductListItem
// @Failure 403 {object} errors.CustomError
// @Router /shops/{id}/products [get]
func (s *RestHandler) ListShopProducts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.ListShopProducts(r.Context(), actor, shopID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListShopOrders handler
// @Summary List shop orders
// @Description Orders containing at least one item from the shop
// @Tags Shop
// @Produce json
// @Param id path int true "Shop ID"
// @Success 200 {array} model.OrderSummary
// @Failure 403 {object} errors.CustomError
// @Router /shops/{id}/orders [get]
func (s *RestHandler) ListShopOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.ListByShop(r.Context(), actor, shopID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetShopStats handler
// @Summary Shop statistics
// @Description Product count, order count and sales total for a shop
// @Tags Shop
// @Produce json
// @Param id path int true "Shop ID"
// @Success 200 {object} model.ShopStats
// @Failure 404 {object} errors.CustomError
// @Router /shops/{id}/stats [get]
func (s *RestHandler) GetShopStats(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ShopApp.GetStats(r.Context(), shopID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetCart handler
// @Summary Get cart
// @Description The buyer's cart resolved against current catalog prices
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Failure 401 {object} errors.CustomError
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AddCartItem handler
// @Summary Add cart item
// @Description Add or replace a product selection in the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.CartItemRequest true "Cart Item"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /cart/items [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.CartApp.AddItem(r.Context(), userID, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RemoveCartItem handler
// @Summary Remove cart item
// @Description Remove one product (optionally one variety) from the cart
// @Tags Cart
// @Produce json
// @Param productID path int true "Product ID"
// @Param variety_id query int false "Variety ID"
// @Success 200 {object} nil
// @Router /cart/items/{productID} [delete]
func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var varietyID *uint64
	if raw := r.URL.Query().Get("variety_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
		varietyID = &v
	}

	if err := s.CartApp.RemoveItem(r.Context(), userID, productID, varietyID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ClearCart handler
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} nil
// @Router /cart [delete]
func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.CartApp.ClearCart(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// Checkout handler
// @Summary Checkout
// @Description Place an order from explicit line items; all-or-nothing
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.CheckoutRequest true "Checkout Request"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /checkout [post]
func (s *RestHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CheckoutApp.Checkout(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CheckoutCart handler
// @Summary Checkout cart
// @Description Place an order from the cart contents and empty the cart
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.CartCheckoutRequest true "Cart Checkout Request"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /cart/checkout [post]
func (s *RestHandler) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CartCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CheckoutApp.CheckoutCart(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListMyOrders handler
// @Summary List own orders
// @Tags Order
// @Produce json
// @Success 200 {array} model.OrderSummary
// @Router /orders [get]
func (s *RestHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.ListByBuyer(r.Context(), actor, actor.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Description Full order with items and status history
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Update order status
// @Description Drive the order through its status transitions
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateStatusRequest true "Status"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /orders/{id}/status [put]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.UpdateStatus(r.Context(), actor, orderID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CancelOrder handler
// @Summary Cancel order
// @Description Cancel a pending or processing order; stock is restored
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} errors.CustomError
// @Router /orders/{id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.CancelOrder(r.Context(), actor, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// InternalCancelOrder cancels an order on behalf of operational tooling.
// Reached only through the internal subrouter with the service API key.
func (s *RestHandler) InternalCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actor := policy.Actor{Role: constant.RoleAdmin}
	res, err := s.OrderApp.CancelOrder(r.Context(), actor, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
