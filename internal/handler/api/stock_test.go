//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"minimarket-backoffice/internal/handler/api"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/tests/common/httptest"
	commandsmock "minimarket-backoffice/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StockHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockStockCommands
	handler      *api.StockHandler
}

func (s *StockHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockStockCommands(s.mockCtrl)
	s.handler = api.NewStockHandler(s.mockCommands)

	s.router.GET("/stock/validate/:user", s.handler.ValidateCart)
	s.router.POST("/stock/process-sale", s.handler.ProcessSale)
}

func (s *StockHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStockHandlerSuite(t *testing.T) {
	suite.Run(t, new(StockHandlerTestSuite))
}

func (s *StockHandlerTestSuite) TestValidateCart() {
	userID := uuid.New()
	url := "/stock/validate/" + userID.String()

	s.Run("success: returns 200 with an empty shortages map", func() {
		s.mockCommands.EXPECT().ValidateCart(gomock.Any(), userID).
			Return(commands.Shortages{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body map[string]int32
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: 409 Conflict with per-product shortages", func() {
		shortID := uuid.New()
		s.mockCommands.EXPECT().ValidateCart(gomock.Any(), userID).
			Return(commands.Shortages{shortID: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "insufficient stock")

		var body struct {
			Detail map[string]int32 `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(int32(2), body.Detail[shortID.String()])
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/stock/validate/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID")
	})
}

func (s *StockHandlerTestSuite) TestProcessSale() {
	url := "/stock/process-sale"
	productID := uuid.New()
	reqBody := map[string]any{
		"lines": []map[string]any{
			{"product_id": productID.String(), "quantity": 3},
		},
	}

	s.Run("success: returns 200 OK when the sale commits", func() {
		s.mockCommands.EXPECT().CommitSale(gomock.Any(), []commands.SaleLine{{ProductID: productID, Quantity: 3}}).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("processed", body["status"])
	})

	s.Run("error: 409 Conflict when stock is insufficient", func() {
		s.mockCommands.EXPECT().CommitSale(gomock.Any(), gomock.Any()).
			Return(errs.WithDetails(errs.KindInsufficientStock, "insufficient stock", commands.Shortages{productID: 1})).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "insufficient stock")
	})

	s.Run("error: 400 Bad Request for an empty body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"lines": []any{}}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}
