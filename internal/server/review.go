package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type generateReviewRequest struct {
	Service string `json:"service"`
}

type generateReviewResponse struct {
	Review       string `json:"review"`
	Exhausted    bool   `json:"exhausted"`
	RechargeLink string `json:"recharge_link,omitempty"`
}

func (s *Server) GenerateReview(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	var req generateReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	result, err := s.reviewSvc.Generate(c.Request.Context(), slug, strings.TrimSpace(req.Service))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": generateReviewResponse{
		Review:       result.Review,
		Exhausted:    result.Exhausted,
		RechargeLink: result.RechargeLink,
	}})
}

// RechargeInfo backs the recharge link shown when credits run out. It
// exposes just enough for the client to mint an order.
func (s *Server) RechargeInfo(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	biz, err := s.businessSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"slug":             biz.Slug,
		"name":             biz.Name,
		"price_per_credit": biz.PricePerCredit,
		"currency":         s.cfg.Currency,
	}})
}
