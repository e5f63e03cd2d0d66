package http

import (
	"net/http"
	"sync"
	"time"

	"ordering/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

const docsInstance = "orders"

var registerDocsOnce sync.Once

// NewRouter builds the echo instance serving the API, health check and
// Swagger UI. Requests to API routes are validated against the OpenAPI
// document before they reach the server.
func NewRouter(server servers.ServerInterface, logger *zap.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	// match on path only
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	if err := registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docsInstance)))

	api := e.Group("", RequestValidator(router))
	servers.RegisterHandlers(api, server)

	return e, nil
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = logger.With(zap.String("component", "http"))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			fields := []zap.Field{
				zap.String("uri", req.RequestURI),
				zap.String("method", req.Method),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", res.Status),
				zap.Int64("size", res.Size),
			}
			if res.Status >= http.StatusInternalServerError {
				logger.Error("got incoming HTTP request", fields...)
			} else {
				logger.Info("got incoming HTTP request", fields...)
			}
			return nil
		}
	}
}

// RequestValidator rejects requests that do not match the OpenAPI document
// with 400. Routes the document does not describe pass through.
func RequestValidator(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errorResponse(c, http.StatusBadRequest, validationMessage(err))
			}

			return next(c)
		}
	}
}

func validationMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return "Invalid parameter " + e.Parameter.Name + ": " + e.Reason
		}
		if e.Err != nil {
			return "Invalid request body: " + e.Err.Error()
		}
		return "Invalid request: " + e.Reason
	default:
		return "Invalid request: " + err.Error()
	}
}

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

func registerDocs(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocsOnce.Do(func() {
		swag.Register(docsInstance, openAPIDoc{json: string(raw)})
	})
	return nil
}
