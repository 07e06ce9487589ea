package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/revu/internal/payment/domain"
)

func (s *Server) HandleRazorpayWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	signature := strings.TrimSpace(c.GetHeader("X-Razorpay-Signature"))

	err = s.webhookSvc.Ingest(c.Request.Context(), payload, signature)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrAlreadyApplied) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
