package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
)

func (s *Server) CreateBusiness(c *gin.Context) {
	var req businessdomain.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	biz, err := s.businessSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": biz})
}

func (s *Server) ListBusinesses(c *gin.Context) {
	businesses, err := s.businessSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": businesses})
}

func (s *Server) GetBusiness(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	biz, err := s.businessSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	used, err := s.reviewSvc.CountByBusiness(c.Request.Context(), biz.Slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"business":     biz,
		"reviews_used": used,
	}})
}

func (s *Server) DeleteBusiness(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	if err := s.businessSvc.Delete(c.Request.Context(), slug); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type grantCreditsRequest struct {
	Credits int64 `json:"credits"`
}

func (s *Server) GrantCredits(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	var req grantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.paymentSvc.GrantCredits(c.Request.Context(), slug, req.Credits); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListBusinessPayments(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	payments, err := s.paymentSvc.ListByBusiness(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func isBusinessValidationError(err error) bool {
	switch {
	case errors.Is(err, businessdomain.ErrInvalidName),
		errors.Is(err, businessdomain.ErrInvalidPlaceID),
		errors.Is(err, businessdomain.ErrInvalidPrice):
		return true
	default:
		return false
	}
}
