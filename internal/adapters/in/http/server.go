package http

import (
	"errors"
	"log/slog"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/core/ports"
	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases, and
// enforces the role and confirmation rules of the API contract.
type Server struct {
	// Command handlers
	authenticateHandler      commands.AuthenticateUserCommandHandler
	submitOrderHandler       commands.SubmitOrderCommandHandler
	updateOrderStatusHandler *commands.UpdateOrderStatusCommandHandler
	draftNewOrderAlert       commands.DraftNewOrderAlertCommandHandler
	createProductHandler     commands.CreateProductCommandHandler
	createUserHandler        commands.CreateUserCommandHandler
	importProductsHandler    commands.ImportProductsCommandHandler
	importUsersHandler       commands.ImportUsersCommandHandler

	// Query handlers
	getAllOrdersHandler   queries.GetAllOrdersQueryHandler
	getAgentOrdersHandler queries.GetAgentOrdersQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	getAllProductsHandler queries.GetAllProductsQueryHandler
	getAllUsersHandler    queries.GetAllUsersQueryHandler

	tokens *TokenIssuer
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	authenticateHandler commands.AuthenticateUserCommandHandler,
	submitOrderHandler commands.SubmitOrderCommandHandler,
	updateOrderStatusHandler *commands.UpdateOrderStatusCommandHandler,
	draftNewOrderAlert commands.DraftNewOrderAlertCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	createUserHandler commands.CreateUserCommandHandler,
	importProductsHandler commands.ImportProductsCommandHandler,
	importUsersHandler commands.ImportUsersCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getAgentOrdersHandler queries.GetAgentOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllProductsHandler queries.GetAllProductsQueryHandler,
	getAllUsersHandler queries.GetAllUsersQueryHandler,
	tokens *TokenIssuer,
	logger *slog.Logger,
) *Server {
	return &Server{
		authenticateHandler:      authenticateHandler,
		submitOrderHandler:       submitOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		draftNewOrderAlert:       draftNewOrderAlert,
		createProductHandler:     createProductHandler,
		createUserHandler:        createUserHandler,
		importProductsHandler:    importProductsHandler,
		importUsersHandler:       importUsersHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getAgentOrdersHandler:    getAgentOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getAllProductsHandler:    getAllProductsHandler,
		getAllUsersHandler:       getAllUsersHandler,
		tokens:                   tokens,
		logger:                   logger,
	}
}

// Login handles POST /api/v1/auth/login - verifies credentials and issues
// a session token.
func (s *Server) Login(ctx echo.Context) error {
	var request servers.LoginRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewAuthenticateUserCommand(string(request.Email), request.Password)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Email and password are required")
	}

	account, err := s.authenticateHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, user.ErrInvalidCredentials) {
		return errorResponse(ctx, http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to authenticate")
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to issue token")
	}

	return ctx.JSON(http.StatusOK, servers.LoginResponse{
		Token: token,
		User: servers.User{
			Id:    account.ID().Bytes(),
			Name:  account.Name(),
			Email: openapi_types.Email(account.Email()),
			Role:  account.Role().String(),
		},
	})
}

// GetOrders handles GET /api/v1/orders - admins see every order, agents
// see only their own.
func (s *Server) GetOrders(ctx echo.Context) error {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusUnauthorized, "Authentication required")
	}

	var orders []queries.OrderQueryResponse
	if claims.IsAdmin() {
		orders, err = s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	} else {
		var query queries.GetAgentOrdersQuery
		query, err = queries.NewGetAgentOrdersQuery(claims.UserID)
		if err != nil {
			return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
		}
		orders, err = s.getAgentOrdersHandler.Handle(ctx.Request().Context(), query)
	}
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderToResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitOrder handles POST /api/v1/orders - an agent places a new customer
// order. After the order is committed an admin alert draft is requested;
// a drafting failure never undoes the order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusUnauthorized, "Authentication required")
	}

	var request servers.NewOrder
	if err = ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	lines := make([]commands.OrderLine, len(request.Lines))
	for i, line := range request.Lines {
		productID, idErr := kernel.UUIDFromBytes(line.ProductId[:])
		if idErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid product id: "+idErr.Error())
		}

		lines[i] = commands.OrderLine{
			ProductID: productID,
			Quantity:  line.Quantity,
		}
		if line.Shade != nil {
			lines[i].Shade = *line.Shade
		}
	}

	var flags []string
	if request.Flags != nil {
		flags = *request.Flags
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(
		orderID, claims.UserID, claims.Name, string(request.CustomerEmail), lines, flags,
	)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err = s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrProductNotFound) ||
			errors.Is(err, commands.ErrShadeNotOfferedByProduct) {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to submit order")
	}

	s.requestNewOrderAlert(ctx, orderID)

	return ctx.JSON(http.StatusCreated, servers.SubmitOrderResult{
		OrderId: orderID.Bytes(),
	})
}

// requestNewOrderAlert drafts the admin notification for a freshly placed
// order. The order exists regardless of the outcome, so failures are only
// logged.
func (s *Server) requestNewOrderAlert(ctx echo.Context, orderID kernel.UUID) {
	cmd, err := commands.NewDraftNewOrderAlertCommand(orderID)
	if err != nil {
		s.logger.Error("failed to build new order alert", "orderId", orderID, "error", err)
		return
	}

	if _, err = s.draftNewOrderAlert.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.Error("failed to draft new order alert", "orderId", orderID, "error", err)
	}
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderId}/status - commits
// a status change and returns the drafted customer notification for review.
// Admin only. The request must carry confirm=true and a status different
// from the order's current one.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var request servers.StatusUpdateRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	if !request.Confirm {
		return errorResponse(ctx, http.StatusBadRequest, "Status update requires explicit confirmation")
	}

	newStatus, err := order.StatusFromString(request.NewStatus)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Unknown status: "+request.NewStatus)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	current, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errorResponse(ctx, http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to load order")
	}

	if current.Status == newStatus.String() {
		return errorResponse(ctx, http.StatusConflict, "Order already has status "+current.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status update: "+err.Error())
	}

	decision, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			return errorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, commands.ErrCompensationFailed):
			return errorResponse(ctx, http.StatusInternalServerError,
				"Drafting failed and the previous status could not be restored")
		case errors.Is(err, ports.ErrDraftingFailed):
			return errorResponse(ctx, http.StatusBadGateway,
				"Notification drafting failed, the status change was rolled back")
		default:
			return errorResponse(ctx, http.StatusInternalServerError, "Failed to update status")
		}
	}

	draft := servers.NotificationDraft{
		SendEmail: decision.SendEmail(),
		Template:  decision.Template().String(),
	}
	if decision.SendEmail() {
		subject := decision.Subject()
		body := decision.Body()
		draft.Subject = &subject
		draft.Body = &body
	}

	return ctx.JSON(http.StatusOK, servers.StatusUpdateResult{
		OrderId:   orderID.Bytes(),
		OldStatus: current.Status,
		NewStatus: newStatus.String(),
		Draft:     draft,
	})
}

// GetProducts handles GET /api/v1/products - retrieves the catalog.
func (s *Server) GetProducts(ctx echo.Context) error {
	if _, err := claimsFrom(ctx); err != nil {
		return errorResponse(ctx, http.StatusUnauthorized, "Authentication required")
	}

	products, err := s.getAllProductsHandler.Handle(ctx.Request().Context(), queries.NewGetAllProductsQuery())
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve products")
	}

	response := make([]servers.Product, len(products))
	for i, p := range products {
		response[i] = servers.Product{
			Id:          p.ID.Bytes(),
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price.String(),
		}
		if len(p.Shades) > 0 {
			shades := p.Shades
			response[i].Shades = &shades
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products - adds a catalog product.
// Admin only.
func (s *Server) CreateProduct(ctx echo.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var request servers.NewProduct
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	price, err := kernel.MoneyFromFloat(request.Price)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid price")
	}

	var shades []string
	if request.Shades != nil {
		shades = *request.Shades
	}

	cmd, err := commands.NewCreateProductCommand(
		request.Name, request.Description, request.Category, price, shades,
	)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid product data: "+err.Error())
	}

	if err = s.createProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid product data: "+err.Error())
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
	}

	return ctx.NoContent(http.StatusCreated)
}

// ImportProducts handles POST /api/v1/products/import - parses a CSV into
// catalog products. Admin only; one invalid row rejects the whole batch.
func (s *Server) ImportProducts(ctx echo.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var request servers.ImportRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewImportProductsCommand(request.CsvData)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "CSV data is required")
	}

	imported, err := s.importProductsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, ports.ErrImportValidationFailed) {
			return errorResponse(ctx, http.StatusUnprocessableEntity, "Import rejected: "+err.Error())
		}
		if errors.Is(err, ports.ErrDraftingFailed) {
			return errorResponse(ctx, http.StatusBadGateway, "Import delegate unavailable")
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to import products")
	}

	return ctx.JSON(http.StatusOK, servers.ImportResult{Imported: imported})
}

// GetUsers handles GET /api/v1/users - retrieves all users. Admin only.
func (s *Server) GetUsers(ctx echo.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	users, err := s.getAllUsersHandler.Handle(ctx.Request().Context(), queries.NewGetAllUsersQuery())
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve users")
	}

	response := make([]servers.User, len(users))
	for i, u := range users {
		response[i] = servers.User{
			Id:    u.ID.Bytes(),
			Name:  u.Name,
			Email: openapi_types.Email(u.Email),
			Role:  u.Role,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateUser handles POST /api/v1/users - adds a user account. Admin only.
func (s *Server) CreateUser(ctx echo.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var request servers.NewUser
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	role, err := user.RoleFromString(request.Role)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Role must be agent or admin")
	}

	cmd, err := commands.NewCreateUserCommand(request.Name, string(request.Email), role, request.Password)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid user data: "+err.Error())
	}

	if err = s.createUserHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid user data: "+err.Error())
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create user")
	}

	return ctx.NoContent(http.StatusCreated)
}

// ImportUsers handles POST /api/v1/users/import - parses a CSV into user
// accounts. Admin only; one invalid row rejects the whole batch.
func (s *Server) ImportUsers(ctx echo.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var request servers.ImportRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewImportUsersCommand(request.CsvData)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "CSV data is required")
	}

	imported, err := s.importUsersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, ports.ErrImportValidationFailed) {
			return errorResponse(ctx, http.StatusUnprocessableEntity, "Import rejected: "+err.Error())
		}
		if errors.Is(err, ports.ErrDraftingFailed) {
			return errorResponse(ctx, http.StatusBadGateway, "Import delegate unavailable")
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to import users")
	}

	return ctx.JSON(http.StatusOK, servers.ImportResult{Imported: imported})
}

func (s *Server) requireAdmin(ctx echo.Context) error {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusUnauthorized, "Authentication required")
	}
	if !claims.IsAdmin() {
		return errorResponse(ctx, http.StatusForbidden, "Admin role required")
	}
	return nil
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

func orderToResponse(o queries.OrderQueryResponse) servers.Order {
	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ProductId: item.ProductID.Bytes(),
			Name:      item.Name,
			Price:     item.Price.String(),
			Quantity:  item.Quantity,
		}
		if item.Shade != "" {
			shade := item.Shade
			items[i].Shade = &shade
		}
	}

	response := servers.Order{
		Id:            o.ID.Bytes(),
		AgentId:       o.AgentID.Bytes(),
		AgentName:     o.AgentName,
		CustomerEmail: openapi_types.Email(o.CustomerEmail),
		Status:        o.Status,
		Total:         o.Total.String(),
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
	if len(o.Flags) > 0 {
		flags := o.Flags
		response.Flags = &flags
	}

	return response
}
