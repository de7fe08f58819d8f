//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"minimarket-backoffice/internal/domain/order"
	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/handler/api"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/queries"
	"minimarket-backoffice/tests/common/httptest"
	commandsmock "minimarket-backoffice/tests/mock/commands"
	queriesmock "minimarket-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCtrl            *gomock.Controller
	mockOrderCommands   *commandsmock.MockOrderCommands
	mockInvoiceCommands *commandsmock.MockInvoiceCommands
	mockQueries         *queriesmock.MockOrderQueries
	handler             *api.OrderHandler
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockOrderCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockInvoiceCommands = commandsmock.NewMockInvoiceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockOrderCommands, s.mockInvoiceCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleCashier)
		c.Next()
	}

	s.router.POST("/order/from-cart", authMiddleware, s.handler.FromCart)
	s.router.PATCH("/order/:id/state", authMiddleware, s.handler.ChangeState)
	s.router.POST("/order/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.GET("/order/:id", authMiddleware, s.handler.Get)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestFromCart() {
	userID := uuid.New()
	url := fmt.Sprintf("/order/from-cart?user=%s&createdBy=cashier-1", userID)

	s.Run("success: returns 201 Created with the new order", func() {
		returnView := &queries.OrderView{
			ID:            uuid.New(),
			UserID:        &userID,
			State:         string(order.StateRequested),
			PaymentMethod: "efectivo",
			Total:         decimal.RequireFromString("30.35"),
		}
		s.mockOrderCommands.EXPECT().Checkout(gomock.Any(), userID, "", "cashier-1").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(string(order.StateRequested), response.State)
	})

	s.Run("error: 409 Conflict when the user already has an active order", func() {
		s.mockOrderCommands.EXPECT().Checkout(gomock.Any(), userID, "", "cashier-1").
			Return(nil, errs.E(errs.KindConflict, "user already has an active order")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "active order")
	})

	s.Run("error: 400 Bad Request for an empty cart", func() {
		s.mockOrderCommands.EXPECT().Checkout(gomock.Any(), userID, "", "cashier-1").
			Return(nil, errs.E(errs.KindInvalidArgument, "cart is empty")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cart is empty")
	})

	s.Run("error: 400 Bad Request when user parameter is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/order/from-cart", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})
}

func (s *OrderHandlerTestSuite) TestChangeState() {
	orderID := uuid.New()
	stateURL := func(next string) string {
		return fmt.Sprintf("/order/%s/state?new=%s", orderID, next)
	}

	s.Run("success: a plain transition does not issue a document", func() {
		returnView := &queries.OrderView{ID: orderID, State: string(order.StatePendingPayment)}
		s.mockOrderCommands.EXPECT().Transition(gomock.Any(), orderID, order.StatePendingPayment).
			Return(order.StatePendingPayment, nil).Times(1)
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, stateURL("pendiente_pago"), nil, "bearer-token")

		var response queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(order.StatePendingPayment), response.State)
	})

	s.Run("success: paying the order issues its document", func() {
		returnView := &queries.OrderView{ID: orderID, State: string(order.StatePaid)}
		s.mockOrderCommands.EXPECT().Transition(gomock.Any(), orderID, order.StatePaid).
			Return(order.StatePaid, nil).Times(1)
		s.mockInvoiceCommands.EXPECT().IssueForOrder(gomock.Any(), orderID, gomock.Any()).
			Return(&queries.InvoiceView{ID: uuid.New(), OrderID: orderID, Kind: "invoice"}, nil).Times(1)
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, stateURL("pagado"), nil, "bearer-token")

		var response queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(order.StatePaid), response.State)
	})

	s.Run("error: 400 Bad Request for an unknown state", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, stateURL("enviado"), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown order state")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "illegal transition",
				commandsError:  errs.E(errs.KindInvalidArgument, "cannot move order from solicitado to completado"),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "cannot move order",
			},
			{
				name:           "terminal order",
				commandsError:  errs.E(errs.KindInvalidState, "order is already cancelado"),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "already cancelado",
			},
			{
				name:           "concurrent state change",
				commandsError:  errs.E(errs.KindConflict, "order state changed concurrently"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "changed concurrently",
			},
			{
				name:           "missing order",
				commandsError:  errs.E(errs.KindNotFound, "order not found"),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "order not found",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockOrderCommands.EXPECT().Transition(gomock.Any(), orderID, order.StatePaid).
					Return(order.State(""), tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, stateURL("pagado"), nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	orderID := uuid.New()
	url := fmt.Sprintf("/order/%s/cancel", orderID)

	s.Run("success: returns 200 OK", func() {
		s.mockOrderCommands.EXPECT().Cancel(gomock.Any(), orderID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request for a terminal order", func() {
		s.mockOrderCommands.EXPECT().Cancel(gomock.Any(), orderID).
			Return(errs.E(errs.KindInvalidState, "order is already completado")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "already completado")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	orderID := uuid.New()

	s.Run("success: returns 200 OK with the order view", func() {
		returnView := &queries.OrderView{ID: orderID, State: string(order.StateRequested)}
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/"+orderID.String(), nil, "bearer-token")

		var response queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
	})

	s.Run("error: 404 Not Found for a missing order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID).
			Return(nil, errs.E(errs.KindNotFound, "order not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/"+orderID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "order not found")
	})
}
