package http

import (
	"context"
	"net"
	"net/http"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/http/middleware"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/service/customer"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/util"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	routeListCustomers = "list-customers"
	routeGetCustomer   = "get-customer"

	bodyLimit = "64K"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

// NewServer wires routes and middleware. rds may be nil, which disables rate limiting.
func NewServer(cfg config.Config, svc *customer.Service, rds *redis.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.ERROR)
	e.HTTPErrorHandler = errorHandler(log)
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout
	e.IPExtractor = ipExtractor(cfg.HTTP.TrustedProxies, log)

	e.Use(
		echoMid.Recover(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewID}),
		requestLogger(log),
		middleware.Metrics(),
		echoMid.BodyLimit(bodyLimit),
	)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", healthHandler())
	e.GET("/", indexHandler())

	// guards
	jsonOnly := middleware.RequireContentType(echo.MIMEApplicationJSON)
	authMW := middleware.APIKey(cfg.HTTP.APIKey)
	rlMW := middleware.RateLimit(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         cfg.RateLimit.Window,
		RetryAfterHint: true,
	})

	// route-level middleware only: Group.Use would register catch-all routes
	// and turn 405s into 404s
	g := e.Group("/customers")
	g.GET("", listCustomersHandler(svc, log), rlMW).Name = routeListCustomers
	g.POST("", createCustomerHandler(svc, log), rlMW, authMW, jsonOnly)
	g.GET("/:id", getCustomerHandler(svc, log), rlMW).Name = routeGetCustomer
	g.PUT("/:id", updateCustomerHandler(svc, log), rlMW, authMW, jsonOnly)
	g.DELETE("/:id", deleteCustomerHandler(svc, log), rlMW, authMW)
	g.POST("/:id/action", actionHandler(svc, log), rlMW, authMW, jsonOnly)

	return &Server{e: e, log: log}
}

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// ipExtractor uses the peer address unless the peer is one of the trusted proxy
// CIDRs, in which case X-Forwarded-For is honoured. Client headers are never
// trusted otherwise.
func ipExtractor(cidrs []string, log *zap.Logger) echo.IPExtractor {
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	trusted := 0
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			log.Warn("ignoring invalid trusted proxy", zap.String("cidr", cidr), zap.Error(err))
			continue
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
		trusted++
	}
	if trusted == 0 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
