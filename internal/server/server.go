package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/kvoice/kvoice/internal/client/domain"
	"github.com/kvoice/kvoice/internal/config"
	"github.com/kvoice/kvoice/internal/export/pdf"
	invoicedomain "github.com/kvoice/kvoice/internal/invoice/domain"
	"github.com/kvoice/kvoice/internal/observability/logger"
	paymentdomain "github.com/kvoice/kvoice/internal/payment/domain"
	profiledomain "github.com/kvoice/kvoice/internal/profile/domain"
	"github.com/kvoice/kvoice/internal/quota"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithContext(c.Request.Context(), log).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	invoiceSvc invoicedomain.Service
	clientSvc  clientdomain.Service
	paymentSvc paymentdomain.Service
	profileSvc profiledomain.Service
	gate       *quota.Gate
	pdf        *pdf.Renderer
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	InvoiceSvc invoicedomain.Service
	ClientSvc  clientdomain.Service
	PaymentSvc paymentdomain.Service
	ProfileSvc profiledomain.Service
	Gate       *quota.Gate
	PDF        *pdf.Renderer
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		invoiceSvc: p.InvoiceSvc,
		clientSvc:  p.ClientSvc,
		paymentSvc: p.PaymentSvc,
		profileSvc: p.ProfileSvc,
		gate:       p.Gate,
		pdf:        p.PDF,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(IdentityMiddleware())

	invoices := api.Group("/invoices")
	invoices.GET("", s.ListInvoices)
	invoices.POST("", s.CreateInvoice)
	invoices.GET("/export.csv", s.ExportInvoicesCSV)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.PATCH("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)
	invoices.POST("/:id/pay", s.MarkInvoicePaid)
	invoices.GET("/:id/pdf", s.DownloadInvoicePDF)

	clients := api.Group("/clients")
	clients.GET("", s.ListClients)
	clients.POST("", s.CreateClient)
	clients.GET("/:id", s.GetClientByID)
	clients.PATCH("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)

	payments := api.Group("/payments")
	payments.GET("", s.ListPayments)
	payments.POST("", s.RecordPayment)
	payments.GET("/export.csv", s.ExportPaymentsCSV)
	payments.PATCH("/:id/status", s.UpdatePaymentStatus)
	payments.DELETE("/:id", s.DeletePayment)

	api.GET("/profile", s.GetProfile)
	api.PUT("/profile", s.UpsertProfile)

	api.GET("/quota", s.GetQuota)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
