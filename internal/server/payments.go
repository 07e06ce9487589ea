package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/revu/internal/payment/domain"
)

type createOrderRequest struct {
	Credits int64 `json:"credits"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.paymentSvc.CreateOrder(c.Request.Context(), slug, req.Credits)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quote})
}

func (s *Server) VerifyPayment(c *gin.Context) {
	var req paymentdomain.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.paymentSvc.VerifyAndApply(c.Request.Context(), req)
	if err != nil {
		// A replayed confirmation means the credits already landed.
		if errors.Is(err, paymentdomain.ErrAlreadyApplied) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isPaymentValidationError(err error) bool {
	switch {
	case errors.Is(err, paymentdomain.ErrVerificationFailed),
		errors.Is(err, paymentdomain.ErrInvalidCredits),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidPayment),
		errors.Is(err, paymentdomain.ErrInvalidPayload):
		return true
	default:
		return false
	}
}
