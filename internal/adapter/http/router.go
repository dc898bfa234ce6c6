package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/topupid/checkout-api/internal/adapter/http/middleware"
	"github.com/topupid/checkout-api/internal/logging"
)

func NewRouter(h *CheckoutHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.POST("/inquiries", authz.Require("checkout.inquiry"), h.CreateInquiry)
		v1.POST("/promos/validate", authz.Require("checkout.inquiry"), h.ValidatePromo)
		v1.POST("/orders", authz.Require("checkout.commit"), h.CommitOrder)
		v1.GET("/orders/:invoice", authz.Require("checkout.read"), h.GetOrder)
	}

	return r
}
